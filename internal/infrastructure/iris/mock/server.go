// Package mock simula el BFF de IRIS para desarrollo y tests. El escenario lo decide el sufijo de
// invoiceRefNo:
//
//	-TIMEOUT  responde tarde (después del timeout del cliente)
//	-INVALID  400 con errores por campo
//	-AUTH     401
//
// y cualquier otra referencia se acepta una sola vez por vendedor (la segunda devuelve 409).
package mock

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/pkg/iris"
)

// Sufijos de invoiceRefNo que disparan cada escenario.
const (
	SuffixTimeout = "-TIMEOUT"
	SuffixInvalid = "-INVALID"
	SuffixAuth    = "-AUTH"
)

// DefaultTimeoutDelay espera del escenario -TIMEOUT; supera el timeout por defecto del cliente.
const DefaultTimeoutDelay = 35 * time.Second

// Server backend simulado. Seguro para uso concurrente.
type Server struct {
	mu        sync.Mutex
	submitted map[string]struct{} // vendedor:referencia aceptadas

	latency      time.Duration
	jitter       time.Duration
	timeoutDelay time.Duration
}

// Option personaliza el servidor simulado.
type Option func(*Server)

// WithLatency latencia base más un extra aleatorio en [0, jitter).
func WithLatency(base, jitter time.Duration) Option {
	return func(s *Server) { s.latency, s.jitter = base, jitter }
}

// WithTimeoutDelay espera del escenario -TIMEOUT.
func WithTimeoutDelay(d time.Duration) Option {
	return func(s *Server) { s.timeoutDelay = d }
}

// New crea el servidor con la latencia del BFF de desarrollo (500ms a 1.5s).
func New(opts ...Option) *Server {
	s := &Server{
		submitted:    make(map[string]struct{}),
		latency:      500 * time.Millisecond,
		jitter:       time.Second,
		timeoutDelay: DefaultTimeoutDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register monta GET /health y POST /invoices/submit en r.
func (s *Server) Register(r fiber.Router) {
	r.Get(iris.HealthPath, s.health)
	r.Post(iris.SubmitPath, s.submit)
}

// App devuelve una aplicación Fiber con las rutas montadas en la raíz.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s.Register(app)
	return app
}

// Reset olvida los envíos registrados.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = make(map[string]struct{})
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "timestamp": nowISO()})
}

type submitBody struct {
	InvoiceRefNo  string `json:"invoiceRefNo"`
	SellerNTNCNIC string `json:"sellerNTNCNIC"`
}

func (s *Server) submit(c *fiber.Ctx) error {
	var body submitBody
	_ = c.BodyParser(&body)
	diagID := c.Get(iris.DiagnosticHeader, "MOCK-UNKNOWN")

	s.simulateLatency()

	switch {
	case strings.HasSuffix(body.InvoiceRefNo, SuffixTimeout):
		time.Sleep(s.timeoutDelay)
		return c.JSON(fiber.Map{"success": true})

	case strings.HasSuffix(body.InvoiceRefNo, SuffixInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"category":     "VALIDATION",
				"message":      "Validation failed",
				"diagnosticId": diagID,
				"fieldErrors": []fiber.Map{
					{"field": "buyerNTNCNIC", "message": "Invalid NTN format"},
					{"field": "items[0].hsCode", "message": "Invalid HS code"},
				},
			},
		})

	case strings.HasSuffix(body.InvoiceRefNo, SuffixAuth):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"category":     "AUTH",
				"message":      "Authentication required",
				"diagnosticId": diagID,
			},
		})
	}

	if !s.record(body.SellerNTNCNIC + ":" + body.InvoiceRefNo) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"category":     "DUPLICATE",
				"message":      "Invoice reference number already exists",
				"diagnosticId": diagID,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"invoiceRefNo":  body.InvoiceRefNo,
		"message":       "Invoice submitted successfully",
		"irisReference": "IRIS-" + strconv.FormatInt(time.Now().UnixMilli(), 10),
		"timestamp":     nowISO(),
	})
}

// record registra la clave y devuelve false si ya existía.
func (s *Server) record(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submitted[key]; ok {
		return false
	}
	s.submitted[key] = struct{}{}
	return true
}

func (s *Server) simulateLatency() {
	d := s.latency
	if s.jitter > 0 {
		d += time.Duration(rand.Int63n(int64(s.jitter)))
	}
	if d > 0 {
		time.Sleep(d)
	}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
