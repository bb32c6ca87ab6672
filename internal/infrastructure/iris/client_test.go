package iris_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
	"github.com/jhoicas/Iris-api/internal/infrastructure/iris/mock"
	"github.com/jhoicas/Iris-api/pkg/iris"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTimeout    = 80 * time.Millisecond
	testRetryDelay = 10 * time.Millisecond
)

// newMockServer levanta el BFF simulado sin latencia; -TIMEOUT responde después de testTimeout.
func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newMockBackend(t)
	return srv
}

func newMockBackend(t *testing.T) (*httptest.Server, *mock.Server) {
	t.Helper()
	m := mock.New(mock.WithLatency(0, 0), mock.WithTimeoutDelay(3*testTimeout))
	srv := httptest.NewServer(adaptor.FiberApp(m.App()))
	t.Cleanup(srv.Close)
	return srv, m
}

func newTestClient(baseURL string, retries int) *infrairis.Client {
	return infrairis.NewClient(infrairis.Config{
		BaseURL:        baseURL,
		RequestTimeout: testTimeout,
		RetryCount:     retries,
		RetryDelay:     testRetryDelay,
	}, nil)
}

func sampleRequest(refNo string) infrairis.SubmitInvoiceRequest {
	return infrairis.SubmitInvoiceRequest{
		InvoiceType:           "Sale Invoice",
		InvoiceDate:           "2024-03-01",
		SellerNTNCNIC:         "1234567",
		SellerBusinessName:    "Acme Traders",
		SellerProvince:        "Sindh",
		SellerAddress:         "Karachi",
		BuyerNTNCNIC:          "7654321",
		BuyerBusinessName:     "Buyer Co",
		BuyerProvince:         "Punjab",
		BuyerAddress:          "Lahore",
		BuyerRegistrationType: "Registered",
		InvoiceRefNo:          refNo,
		ScenarioID:            "SN000",
		Items: []infrairis.SubmitInvoiceItem{{
			HSCode: "0101.2100", ProductDescription: "Widget", Rate: "18%", UoM: "Numbers",
			Quantity: "2", TotalValues: "236", SalesTaxApplicable: "36", SaleType: "Local",
		}},
	}
}

// recorder acumula los intentos notificados por Submit.
type recorder struct {
	mu       sync.Mutex
	attempts []*infrairis.AttemptResult
}

func (r *recorder) record(a *infrairis.AttemptResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios del BFF simulado
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_Exito(t *testing.T) {
	srv := newMockServer(t)
	client := newTestClient(srv.URL, 2)
	rec := &recorder{}

	res := client.Submit(context.Background(), sampleRequest("INV-2024-001"), rec.record)

	require.True(t, res.Success, "el envío debe aceptarse")
	assert.Nil(t, res.Error)
	assert.Equal(t, 1, res.AttemptNumber)
	assert.Len(t, rec.attempts, 1)
	assert.Equal(t, true, res.Response["success"])
	assert.Equal(t, "INV-2024-001", res.Response["invoiceRefNo"])
	assert.True(t, strings.HasPrefix(res.Response["irisReference"].(string), "IRIS-"))
	assert.NotEmpty(t, res.Response["timestamp"])
	assert.True(t, strings.HasPrefix(res.DiagnosticID, "DIAG-"))
}

func TestSubmit_AuthNoSeReintenta(t *testing.T) {
	srv := newMockServer(t)
	client := newTestClient(srv.URL, 2)
	rec := &recorder{}

	res := client.Submit(context.Background(), sampleRequest("INV-001-AUTH"), rec.record)

	require.False(t, res.Success)
	assert.Len(t, rec.attempts, 1, "un 401 termina el ciclo en el primer intento")
	assert.Equal(t, infrairis.CategoryAuth, res.Error.Category)
	assert.Equal(t, http.StatusUnauthorized, res.Error.HTTPStatus)
	assert.False(t, res.Error.Retryable)
}

func TestSubmit_ValidationConErroresPorCampo(t *testing.T) {
	srv := newMockServer(t)
	client := newTestClient(srv.URL, 2)
	rec := &recorder{}

	res := client.Submit(context.Background(), sampleRequest("INV-001-INVALID"), rec.record)

	require.False(t, res.Success)
	assert.Len(t, rec.attempts, 1)
	assert.Equal(t, infrairis.CategoryValidation, res.Error.Category)
	require.Len(t, res.Error.FieldErrors, 2)
	assert.Equal(t, "buyerNTNCNIC", res.Error.FieldErrors[0].Field)
	assert.Equal(t, "items[0].hsCode", res.Error.FieldErrors[1].Field)
}

func TestSubmit_DuplicadoEnSegundoEnvio(t *testing.T) {
	srv, backend := newMockBackend(t)
	client := newTestClient(srv.URL, 2)

	first := client.Submit(context.Background(), sampleRequest("INV-DUP-1"), nil)
	require.True(t, first.Success)

	second := client.Submit(context.Background(), sampleRequest("INV-DUP-1"), nil)
	require.False(t, second.Success)
	assert.Equal(t, infrairis.CategoryDuplicate, second.Error.Category)
	assert.Equal(t, http.StatusConflict, second.Error.HTTPStatus)

	backend.Reset()
	third := client.Submit(context.Background(), sampleRequest("INV-DUP-1"), nil)
	assert.True(t, third.Success, "tras Reset el BFF olvida la referencia")
}

func TestSubmit_TimeoutAgotaReintentos(t *testing.T) {
	srv := newMockServer(t)
	client := newTestClient(srv.URL, 2)
	rec := &recorder{}

	start := time.Now()
	res := client.Submit(context.Background(), sampleRequest("INV-001-TIMEOUT"), rec.record)
	elapsed := time.Since(start)

	require.False(t, res.Success)
	require.Len(t, rec.attempts, 3, "1 intento + 2 reintentos")
	assert.Equal(t, 3, res.AttemptNumber)
	assert.Equal(t, "Request timed out after 80ms", res.Error.Message)

	ids := map[string]bool{}
	for i, a := range rec.attempts {
		assert.Equal(t, i+1, a.AttemptNumber)
		assert.Equal(t, infrairis.CategoryTransient, a.Error.Category)
		ids[a.DiagnosticID] = true
	}
	assert.Len(t, ids, 3, "cada intento lleva su propio diagnosticId")
	assert.GreaterOrEqual(t, elapsed, 3*testTimeout+2*testRetryDelay, "el timer decide cada intento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transporte
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FalloDeTransporteYLuegoExito(t *testing.T) {
	var calls atomic.Int32
	var lastDiag atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastDiag.Store(r.Header.Get(iris.DiagnosticHeader))
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "irisReference": "IRIS-1"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2)
	rec := &recorder{}
	res := client.Submit(context.Background(), sampleRequest("INV-RETRY-1"), rec.record)

	require.True(t, res.Success, "el segundo intento debe aceptarse")
	require.Len(t, rec.attempts, 2)
	assert.Equal(t, infrairis.CategoryTransient, rec.attempts[0].Error.Category)
	assert.True(t, rec.attempts[0].Error.Retryable)
	assert.Equal(t, 2, res.AttemptNumber)
	assert.Equal(t, "IRIS-1", res.Response["irisReference"])
	assert.Equal(t, res.DiagnosticID, lastDiag.Load(), "el diagnosticId viaja en la cabecera")
}

func TestSubmit_ServidorCaidoAgotaReintentos(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestClient(url, 1)
	rec := &recorder{}
	res := client.Submit(context.Background(), sampleRequest("INV-DOWN-1"), rec.record)

	require.False(t, res.Success)
	assert.Len(t, rec.attempts, 2)
	assert.Equal(t, infrairis.CategoryTransient, res.Error.Category)
	assert.Zero(t, res.Error.HTTPStatus)
}

func TestSubmit_RespuestaNoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, 2).Submit(context.Background(), sampleRequest("INV-502"), nil)

	require.False(t, res.Success)
	assert.Equal(t, 1, res.AttemptNumber, "un 5xx no se reintenta")
	assert.Equal(t, infrairis.CategoryUnknown, res.Error.Category)
	assert.Equal(t, infrairis.MsgServerError, res.Error.Message)
}

func TestSubmit_ContextoCanceladoNoReintenta(t *testing.T) {
	srv := newMockServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	res := newTestClient(srv.URL, 3).Submit(ctx, sampleRequest("INV-CTX-1"), rec.record)

	require.False(t, res.Success)
	assert.Len(t, rec.attempts, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud y endpoint
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckHealth(t *testing.T) {
	srv := newMockServer(t)
	assert.True(t, newTestClient(srv.URL, 0).CheckHealth(context.Background()))

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()
	assert.False(t, newTestClient(url, 0).CheckHealth(context.Background()))
}

// countingTransport cuenta las peticiones y guarda el último X-Diagnostic-Id.
type countingTransport struct {
	calls  atomic.Int32
	diagID atomic.Value
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	c.diagID.Store(req.Header.Get(iris.DiagnosticHeader))
	return http.DefaultTransport.RoundTrip(req)
}

func TestSubmit_HTTPClientPropio(t *testing.T) {
	srv := newMockServer(t)
	transport := &countingTransport{}
	client := infrairis.NewClient(infrairis.Config{
		BaseURL:        srv.URL,
		RequestTimeout: testTimeout,
		RetryDelay:     testRetryDelay,
	}, nil, infrairis.WithHTTPClient(&http.Client{Transport: transport}))

	res := client.Submit(context.Background(), sampleRequest("INV-CUSTOM-1"), nil)
	require.True(t, res.Success)
	assert.EqualValues(t, 1, transport.calls.Load(), "el envío debe pasar por el cliente inyectado")
	assert.Equal(t, res.DiagnosticID, transport.diagID.Load())

	assert.True(t, client.CheckHealth(context.Background()))
	assert.EqualValues(t, 2, transport.calls.Load())
}

func TestEndpoint(t *testing.T) {
	c := newTestClient("http://localhost:8080/api/bff/", 2)
	assert.Equal(t, "http://localhost:8080/api/bff/invoices/submit", c.Endpoint())
	assert.Equal(t, 3, c.MaxAttempts())
}
