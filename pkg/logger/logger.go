package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Iris-api/pkg/diagnostics"
)

// Config opciones para el logger.
type Config struct {
	Env   string // development -> consola legible; staging/production -> JSON
	Level string // debug, info, warn, error
}

// Logger wrapper sobre zerolog para inyección y consistencia.
//
// Todo payload estructurado pasa por diagnostics.Redact antes de emitirse, en cualquier
// entorno: el formato cambia entre consola y JSON, el contenido no.
type Logger struct {
	zl zerolog.Logger
}

// New crea un logger estructurado. En development usa salida legible; en el resto JSON.
func New(cfg Config) *Logger {
	l := NewWithWriter(os.Stdout, cfg)

	// Redirigir el logger global de zerolog para librerías que lo usen
	log.Logger = l.zl

	return l
}

// NewWithWriter igual que New pero escribiendo en w (tests, archivos).
func NewWithWriter(w io.Writer, cfg Config) *Logger {
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Nop devuelve un logger que descarta todo.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug, Info, Warn y Error emiten msg con data (redactado) y el diagnosticID, si lo hay.
func (l *Logger) Debug(msg string, data map[string]any, diagnosticID string) {
	emit(l.zl.Debug(), msg, data, diagnosticID)
}

func (l *Logger) Info(msg string, data map[string]any, diagnosticID string) {
	emit(l.zl.Info(), msg, data, diagnosticID)
}

func (l *Logger) Warn(msg string, data map[string]any, diagnosticID string) {
	emit(l.zl.Warn(), msg, data, diagnosticID)
}

func (l *Logger) Error(msg string, data map[string]any, diagnosticID string) {
	emit(l.zl.Error(), msg, data, diagnosticID)
}

// Fatal registra err y termina el proceso (solo para el arranque).
func (l *Logger) Fatal(err error, msg string) {
	l.zl.Fatal().Err(err).Msg(msg)
}

// With crea un sublogger con el campo component fijo.
func (l *Logger) With(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

func emit(ev *zerolog.Event, msg string, data map[string]any, diagnosticID string) {
	if ev == nil {
		return
	}
	if diagnosticID != "" {
		ev = ev.Str("diagnosticId", diagnosticID)
	}
	if len(data) > 0 {
		ev = ev.Fields(diagnostics.Redact(data))
	}
	ev.Msg(msg)
}
