package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Entornos admitidos en APP_ENV.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Drivers de almacenamiento admitidos en STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Límites de la política de envío.
const (
	MaxRequestTimeoutMs = 120000
	MaxRetryCount       = 5
	MaxRetryDelayMs     = 10000
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez al arrancar y se inyecta; no se modifica durante la vida del proceso.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	IRIS    IRISConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selecciona el backend del ledger y de los documentos.
type StorageConfig struct {
	Driver string // memory, postgres
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// IRISConfig política de envío a la API IRIS/FBR (o al BFF que la expone).
type IRISConfig struct {
	BaseURL          string
	EnableMock       bool
	RequestTimeoutMs int
	RetryCount       int
	RetryDelayMs     int
	RateLimitRPS     float64 // 0 = sin límite
}

// RequestTimeout timeout por intento.
func (c IRISConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// RetryDelay espera entre reintentos.
func (c IRISConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// MaxAttempts intentos totales por ciclo de envío (1 + reintentos).
func (c IRISConfig) MaxAttempts() int {
	return 1 + c.RetryCount
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo) y la valida.
// Las env vars tienen prioridad. Una configuración inválida devuelve error: el llamador no debe continuar.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return LoadFrom(v)
}

// LoadFrom construye la configuración a partir de una instancia de Viper ya preparada.
func LoadFrom(v *viper.Viper) (*Config, error) {
	r := &reader{v: v}

	cfg := &Config{
		App: AppConfig{
			Env:      r.str("APP_ENV", EnvDevelopment),
			Name:     r.str("APP_NAME", "iris-portal"),
			LogLevel: r.str("LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: r.str("HTTP_HOST", "0.0.0.0"),
			Port: r.integer("HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver: r.str("STORAGE_DRIVER", StorageMemory),
		},
		DB: DBConfig{
			DatabaseURL: r.str("DATABASE_URL", ""),
			Host:        r.str("DB_HOST", "localhost"),
			Port:        r.integer("DB_PORT", 5432),
			User:        r.str("DB_USER", "postgres"),
			Password:    r.str("DB_PASSWORD", ""),
			DBName:      r.str("DB_NAME", "iris_portal"),
			SSLMode:     r.str("DB_SSLMODE", "disable"),
		},
		IRIS: IRISConfig{
			BaseURL:          r.str("IRIS_API_BASE_URL", "http://localhost:8080/api/bff"),
			EnableMock:       r.boolean("IRIS_ENABLE_MOCK", false),
			RequestTimeoutMs: r.integer("IRIS_REQUEST_TIMEOUT_MS", 30000),
			RetryCount:       r.integer("IRIS_TIMEOUT_RETRY_COUNT", 2),
			RetryDelayMs:     r.integer("IRIS_RETRY_DELAY_MS", 2000),
			RateLimitRPS:     r.float("IRIS_RATE_LIMIT_RPS", 0),
		},
	}

	errs := r.errs
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuración inválida: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// Validate comprueba rangos y formatos. Devuelve todos los problemas encontrados.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV debe ser development, staging o production: %q", c.App.Env))
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT fuera de rango: %d", c.HTTP.Port))
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER debe ser memory o postgres: %q", c.Storage.Driver))
	}

	u, err := url.Parse(c.IRIS.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("IRIS_API_BASE_URL debe ser una URL válida: %q", c.IRIS.BaseURL))
	}
	if c.IRIS.RequestTimeoutMs <= 0 || c.IRIS.RequestTimeoutMs > MaxRequestTimeoutMs {
		errs = append(errs, fmt.Errorf("IRIS_REQUEST_TIMEOUT_MS debe estar entre 1 y %d: %d", MaxRequestTimeoutMs, c.IRIS.RequestTimeoutMs))
	}
	if c.IRIS.RetryCount < 0 || c.IRIS.RetryCount > MaxRetryCount {
		errs = append(errs, fmt.Errorf("IRIS_TIMEOUT_RETRY_COUNT debe estar entre 0 y %d: %d", MaxRetryCount, c.IRIS.RetryCount))
	}
	if c.IRIS.RetryDelayMs <= 0 || c.IRIS.RetryDelayMs > MaxRetryDelayMs {
		errs = append(errs, fmt.Errorf("IRIS_RETRY_DELAY_MS debe estar entre 1 y %d: %d", MaxRetryDelayMs, c.IRIS.RetryDelayMs))
	}
	if c.IRIS.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("IRIS_RATE_LIMIT_RPS no puede ser negativo: %v", c.IRIS.RateLimitRPS))
	}

	return errors.Join(errs...)
}

// reader lee claves de Viper acumulando errores de parseo en lugar de devolver ceros.
type reader struct {
	v    *viper.Viper
	errs []error
}

func (r *reader) str(key, def string) string {
	if r.v.IsSet(key) {
		return strings.TrimSpace(r.v.GetString(key))
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	if !r.v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(r.v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: entero inválido %q", key, raw))
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	if !r.v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(r.v.GetString(key))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: booleano inválido %q", key, raw))
		return def
	}
	return b
}

func (r *reader) float(key string, def float64) float64 {
	if !r.v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(r.v.GetString(key))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: número inválido %q", key, raw))
		return def
	}
	return f
}
