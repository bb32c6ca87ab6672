package iris_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
	"github.com/jhoicas/Iris-api/pkg/diagnostics"
)

const testDiag = "DIAG-TEST-000001"

// ──────────────────────────────────────────────────────────────────────────────
// Classify
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_PorStatus(t *testing.T) {
	cases := []struct {
		status   int
		category infrairis.ErrorCategory
		message  string
	}{
		{401, infrairis.CategoryAuth, infrairis.MsgAuthRequired},
		{403, infrairis.CategoryAuth, infrairis.MsgAccessForbidden},
		{400, infrairis.CategoryValidation, infrairis.MsgValidation},
		{422, infrairis.CategoryValidation, infrairis.MsgValidation},
		{409, infrairis.CategoryDuplicate, infrairis.MsgDuplicate},
		{429, infrairis.CategoryTransient, infrairis.MsgRateLimited},
		{500, infrairis.CategoryUnknown, infrairis.MsgServerError},
		{503, infrairis.CategoryUnknown, infrairis.MsgServerError},
		{404, infrairis.CategoryUnknown, infrairis.MsgUnexpected},
		{302, infrairis.CategoryUnknown, infrairis.MsgUnexpected},
	}
	for _, tc := range cases {
		got := infrairis.Classify(tc.status, nil, testDiag)
		require.NotNil(t, got)
		assert.Equal(t, tc.category, got.Category, "categoría para %d", tc.status)
		assert.Equal(t, tc.message, got.Message, "mensaje para %d", tc.status)
		assert.Equal(t, tc.status, got.HTTPStatus)
		assert.Equal(t, testDiag, got.DiagnosticID)
		assert.False(t, got.Retryable, "ninguna respuesta HTTP se reintenta (%d)", tc.status)
	}
}

func TestClassify_Total(t *testing.T) {
	bodies := []any{nil, "texto plano", 42.0, []any{1, "a"}, map[string]any{}, map[string]any{"errors": "no-lista"}}
	for status := 0; status < 700; status += 7 {
		for _, b := range bodies {
			assert.NotPanics(t, func() {
				got := infrairis.Classify(status, b, testDiag)
				assert.NotEmpty(t, got.Category)
				assert.NotEmpty(t, got.Message)
			})
		}
	}
}

func TestClassify_RawResponseResumido(t *testing.T) {
	got := infrairis.Classify(500, map[string]any{"message": "boom", "token": "t"}, testDiag)
	assert.JSONEq(t, `{"message":"boom","token":"[REDACTED]"}`, got.RawResponse)

	got = infrairis.Classify(502, nil, testDiag)
	assert.Equal(t, diagnostics.NoResponseBody, got.RawResponse)
}

func TestClassify_ValidationConFieldErrors(t *testing.T) {
	body := map[string]any{
		"errors": []any{
			map[string]any{"field": "invoiceDate", "message": "bad date", "code": "E01"},
			map[string]any{"path": "items[0].rate", "error": "bad rate"},
		},
	}
	got := infrairis.Classify(400, body, testDiag)
	assert.Equal(t, []infrairis.FieldError{
		{Field: "invoiceDate", Message: "bad date", Code: "E01"},
		{Field: "items[0].rate", Message: "bad rate"},
	}, got.FieldErrors)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtractFieldErrors: formas de cuerpo
// ──────────────────────────────────────────────────────────────────────────────

func TestExtractFieldErrors_MapaOrdenado(t *testing.T) {
	body := map[string]any{"fieldErrors": map[string]any{"sellerNTNCNIC": "requerido", "buyerProvince": "inválida"}}
	assert.Equal(t, []infrairis.FieldError{
		{Field: "buyerProvince", Message: "inválida"},
		{Field: "sellerNTNCNIC", Message: "requerido"},
	}, infrairis.ExtractFieldErrors(body))
}

func TestExtractFieldErrors_AnidadoEnError(t *testing.T) {
	body := map[string]any{
		"success": false,
		"error": map[string]any{
			"category": "VALIDATION",
			"fieldErrors": []any{
				map[string]any{"field": "buyerNTNCNIC", "message": "Invalid NTN format"},
			},
		},
	}
	assert.Equal(t, []infrairis.FieldError{{Field: "buyerNTNCNIC", Message: "Invalid NTN format"}},
		infrairis.ExtractFieldErrors(body))
}

func TestExtractFieldErrors_Defaults(t *testing.T) {
	body := map[string]any{"errors": []any{map[string]any{"code": ""}, "suelto"}}
	assert.Equal(t, []infrairis.FieldError{
		{Field: "unknown", Message: "Unknown error"},
		{Field: "unknown", Message: "suelto"},
	}, infrairis.ExtractFieldErrors(body))
}

func TestExtractFieldErrors_SinForma(t *testing.T) {
	assert.Nil(t, infrairis.ExtractFieldErrors(nil))
	assert.Nil(t, infrairis.ExtractFieldErrors("texto"))
	assert.Nil(t, infrairis.ExtractFieldErrors(map[string]any{"message": "x"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transporte, timeout y mapeo a outcome
// ──────────────────────────────────────────────────────────────────────────────

func TestTransportError(t *testing.T) {
	got := infrairis.TransportError(errors.New("connection refused"), testDiag)
	assert.Equal(t, infrairis.CategoryTransient, got.Category)
	assert.Equal(t, "connection refused", got.Message)
	assert.True(t, got.Retryable)
	assert.Zero(t, got.HTTPStatus)

	assert.Equal(t, infrairis.MsgNetworkError, infrairis.TransportError(nil, testDiag).Message)
}

func TestTimeoutError(t *testing.T) {
	got := infrairis.TimeoutError(30*time.Second, testDiag)
	assert.Equal(t, "Request timed out after 30000ms", got.Message)
	assert.Equal(t, infrairis.CategoryTransient, got.Category)
	assert.True(t, got.Retryable)
}

func TestErrorToOutcome(t *testing.T) {
	cases := map[infrairis.ErrorCategory]string{
		infrairis.CategoryValidation: entity.OutcomeValidationError,
		infrairis.CategoryAuth:       entity.OutcomeAuthError,
		infrairis.CategoryDuplicate:  entity.OutcomeDuplicateError,
		infrairis.CategoryTransient:  entity.OutcomeTimeout,
		infrairis.CategoryUnknown:    entity.OutcomeUnknown,
	}
	for category, outcome := range cases {
		assert.Equal(t, outcome, infrairis.ErrorToOutcome(category))
	}
	assert.Equal(t, entity.OutcomeUnknown, infrairis.ErrorToOutcome("OTRA"), "categorías desconocidas caen en UNKNOWN")
}
