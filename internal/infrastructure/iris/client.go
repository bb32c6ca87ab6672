package iris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Iris-api/pkg/config"
	"github.com/jhoicas/Iris-api/pkg/diagnostics"
	"github.com/jhoicas/Iris-api/pkg/iris"
	"github.com/jhoicas/Iris-api/pkg/logger"
)

// maxResponseBytes límite de lectura del cuerpo de respuesta.
const maxResponseBytes = 1 << 20

// Config política de envío del cliente.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RetryCount     int
	RetryDelay     time.Duration
	RateLimitRPS   float64 // 0 = sin límite
}

// ConfigFrom traduce la configuración de la aplicación.
func ConfigFrom(c config.IRISConfig) Config {
	return Config{
		BaseURL:        c.BaseURL,
		RequestTimeout: c.RequestTimeout(),
		RetryCount:     c.RetryCount,
		RetryDelay:     c.RetryDelay(),
		RateLimitRPS:   c.RateLimitRPS,
	}
}

// Client adaptador HTTP hacia IRIS. Seguro para uso concurrente: no guarda estado por envío.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// Option personaliza el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes propios).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient construye el cliente. El timeout por intento lo impone la carrera de Submit, no el
// *http.Client.
func NewClient(cfg Config, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.Nop()
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        log.With("iris_client"),
	}
	if cfg.RateLimitRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint URL completa de envío.
func (c *Client) Endpoint() string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + iris.SubmitPath
}

// MaxAttempts intentos por ciclo (1 + reintentos).
func (c *Client) MaxAttempts() int {
	return 1 + c.cfg.RetryCount
}

// Submit ejecuta un ciclo de envío: hasta MaxAttempts intentos, reintentando solo fallos
// TRANSIENT de transporte o timeout, con RetryDelay entre intentos. onAttempt se invoca de forma
// síncrona tras cada intento, antes de decidir si se reintenta. Devuelve el último intento.
//
// ctx solo acota las esperas entre reintentos y la llamada en curso (apagado del proceso).
func (c *Client) Submit(ctx context.Context, req SubmitInvoiceRequest, onAttempt func(*AttemptResult)) *AttemptResult {
	maxAttempts := c.MaxAttempts()
	var last *AttemptResult
	n := 0

	op := func() error {
		n++
		last = c.attempt(ctx, req, n, maxAttempts)
		if onAttempt != nil {
			onAttempt(last)
		}
		if last.Success {
			return nil
		}
		if !last.Error.Retryable {
			return backoff.Permanent(last.Error)
		}
		return last.Error
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.RetryDelay), uint64(c.cfg.RetryCount)),
		ctx,
	)
	notify := func(_ error, wait time.Duration) {
		c.log.Info(fmt.Sprintf("esperando %dms antes de reintentar", wait.Milliseconds()),
			map[string]any{"nextAttempt": n + 1}, last.DiagnosticID)
	}

	// El error ya está en last; RetryNotify solo marca el ritmo.
	_ = backoff.RetryNotify(op, policy, notify)
	return last
}

// attempt un único intento con diagnóstico propio.
func (c *Client) attempt(ctx context.Context, req SubmitInvoiceRequest, n, maxAttempts int) *AttemptResult {
	diagID := diagnostics.GenerateID()
	start := time.Now()
	res := &AttemptResult{AttemptNumber: n, DiagnosticID: diagID}

	c.log.Info("iniciando intento de envío", map[string]any{
		"attemptNumber": n,
		"invoiceRefNo":  req.InvoiceRefNo,
		"maxAttempts":   maxAttempts,
	}, diagID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			res.Error = TransportError(err, diagID)
			res.DurationMs = time.Since(start).Milliseconds()
			c.logFailure(res)
			return res
		}
	}

	status, body, apiErr := c.race(ctx, req, diagID)
	res.DurationMs = time.Since(start).Milliseconds()

	switch {
	case apiErr != nil:
		res.Error = apiErr
	case status >= 200 && status < 300:
		res.Success = true
		res.Response = successEnvelope(req.InvoiceRefNo, body)
		c.log.Info("envío aceptado", map[string]any{
			"attemptNumber": n,
			"durationMs":    res.DurationMs,
		}, diagID)
		return res
	default:
		res.Error = Classify(status, body, diagID)
	}

	c.logFailure(res)
	return res
}

func (c *Client) logFailure(res *AttemptResult) {
	data := map[string]any{
		"attemptNumber": res.AttemptNumber,
		"category":      string(res.Error.Category),
		"durationMs":    res.DurationMs,
	}
	if res.Error.HTTPStatus > 0 {
		data["httpStatus"] = res.Error.HTTPStatus
	} else {
		data["message"] = res.Error.Message
	}
	c.log.Warn("intento de envío fallido", data, res.DiagnosticID)
}

// ── Carrera respuesta vs. timeout ─────────────────────────────────────────────

type httpOutcome struct {
	status int
	body   any
	err    error
}

// race lanza la llamada HTTP en su propia goroutine y espera la respuesta o el timer, lo que
// llegue primero. Si gana el timer se cancela la llamada; su resultado tardío cae en el canal con
// buffer y se descarta.
func (c *Client) race(ctx context.Context, req SubmitInvoiceRequest, diagID string) (int, any, *APIError) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan httpOutcome, 1)
	go func() {
		status, body, err := c.post(callCtx, req, diagID)
		done <- httpOutcome{status: status, body: body, err: err}
	}()

	timer := time.NewTimer(c.cfg.RequestTimeout)
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			return 0, nil, TransportError(out.err, diagID)
		}
		return out.status, out.body, nil
	case <-timer.C:
		return 0, nil, TimeoutError(c.cfg.RequestTimeout, diagID)
	}
}

// post envía el documento y devuelve status y cuerpo JSON decodificado (nil si no es JSON).
func (c *Client) post(ctx context.Context, req SubmitInvoiceRequest, diagID string) (int, any, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, nil, fmt.Errorf("serializar documento: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("crear HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(iris.DiagnosticHeader, diagID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("leer respuesta: %w", err)
	}

	var body any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			body = nil
		}
	}
	return resp.StatusCode, body, nil
}

// successEnvelope arma {success, invoiceRefNo, timestamp} y le superpone los campos del servidor.
func successEnvelope(refNo string, body any) map[string]any {
	env := map[string]any{
		"success":      true,
		"invoiceRefNo": refNo,
		"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	if m, ok := body.(map[string]any); ok {
		for k, v := range m {
			env[k] = v
		}
	}
	return env
}

// CheckHealth consulta GET <base>/health. true solo ante un 2xx; cualquier error es false.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	url := strings.TrimRight(c.cfg.BaseURL, "/") + iris.HealthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
