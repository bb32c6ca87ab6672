package iris

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/pkg/diagnostics"
)

// Mensajes mostrados al usuario por categoría.
const (
	MsgAuthRequired    = "Authentication required"
	MsgAccessForbidden = "Access forbidden"
	MsgValidation      = "Validation failed"
	MsgDuplicate       = "Invoice reference already exists"
	MsgRateLimited     = "Rate limit exceeded. Please try again later."
	MsgServerError     = "Server error occurred"
	MsgUnexpected      = "An unexpected error occurred"
	MsgNetworkError    = "Network error"
)

// Classify convierte una respuesta HTTP no exitosa en un APIError. Es total: cualquier status y
// cualquier cuerpo (incluido nil) producen un resultado. Ninguna categoría HTTP es reintentable.
func Classify(httpStatus int, body any, diagnosticID string) *APIError {
	apiErr := &APIError{
		Category:     CategoryUnknown,
		Message:      MsgUnexpected,
		DiagnosticID: diagnosticID,
		HTTPStatus:   httpStatus,
		RawResponse:  diagnostics.SummarizeDefault(body),
	}

	switch {
	case httpStatus == http.StatusUnauthorized:
		apiErr.Category, apiErr.Message = CategoryAuth, MsgAuthRequired
	case httpStatus == http.StatusForbidden:
		apiErr.Category, apiErr.Message = CategoryAuth, MsgAccessForbidden
	case httpStatus == http.StatusBadRequest || httpStatus == http.StatusUnprocessableEntity:
		apiErr.Category, apiErr.Message = CategoryValidation, MsgValidation
		apiErr.FieldErrors = ExtractFieldErrors(body)
	case httpStatus == http.StatusConflict:
		apiErr.Category, apiErr.Message = CategoryDuplicate, MsgDuplicate
	case httpStatus == http.StatusTooManyRequests:
		// TRANSIENT pero sin reintento automático: reintentar solo empeora el límite.
		apiErr.Category, apiErr.Message = CategoryTransient, MsgRateLimited
	case httpStatus >= http.StatusInternalServerError:
		apiErr.Category, apiErr.Message = CategoryUnknown, MsgServerError
	}
	return apiErr
}

// TransportError fallo sin respuesta HTTP (conexión rechazada, DNS, cuerpo cortado...).
func TransportError(err error, diagnosticID string) *APIError {
	msg := MsgNetworkError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &APIError{
		Category:     CategoryTransient,
		Message:      msg,
		DiagnosticID: diagnosticID,
		Retryable:    true,
	}
}

// TimeoutError intento abandonado porque el timer ganó la carrera contra la respuesta.
func TimeoutError(timeout time.Duration, diagnosticID string) *APIError {
	return &APIError{
		Category:     CategoryTransient,
		Message:      fmt.Sprintf("Request timed out after %dms", timeout.Milliseconds()),
		DiagnosticID: diagnosticID,
		Retryable:    true,
	}
}

// ExtractFieldErrors reconoce dos formas de cuerpo de error:
//
//	{"errors": [{"field"|"path": ..., "message"|"error": ..., "code": ...}, ...]}
//	{"fieldErrors": {"campo": "mensaje", ...}}   (o una lista con la forma de "errors")
//
// y, si el nivel superior no trae ninguna, las busca dentro de "error" (forma del BFF).
// Devuelve nil si el cuerpo no es un objeto JSON o no coincide con ninguna forma.
func ExtractFieldErrors(body any) []FieldError {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	if fe := extractFieldErrors(obj); fe != nil {
		return fe
	}
	if nested, ok := obj["error"].(map[string]any); ok {
		return extractFieldErrors(nested)
	}
	return nil
}

func extractFieldErrors(obj map[string]any) []FieldError {
	if list, ok := obj["errors"].([]any); ok {
		return fieldErrorList(list)
	}

	switch fields := obj["fieldErrors"].(type) {
	case []any:
		// El BFF de desarrollo envía fieldErrors como lista de objetos.
		return fieldErrorList(fields)
	case map[string]any:
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]FieldError, 0, len(keys))
		for _, k := range keys {
			out = append(out, FieldError{Field: k, Message: fmt.Sprint(fields[k])})
		}
		return out
	}
	return nil
}

func fieldErrorList(list []any) []FieldError {
	out := make([]FieldError, 0, len(list))
	for _, item := range list {
		e, ok := item.(map[string]any)
		if !ok {
			out = append(out, FieldError{Field: "unknown", Message: fmt.Sprint(item)})
			continue
		}
		fe := FieldError{
			Field:   stringOr(firstPresent(e, "field", "path"), "unknown"),
			Message: stringOr(firstPresent(e, "message", "error"), "Unknown error"),
		}
		if code, ok := e["code"]; ok && truthy(code) {
			fe.Code = fmt.Sprint(code)
		}
		out = append(out, fe)
	}
	return out
}

// firstPresent devuelve el primer valor no nulo entre las claves dadas.
func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringOr(v any, def string) string {
	if v == nil {
		return def
	}
	return fmt.Sprint(v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

// ErrorToOutcome resultado de ledger que corresponde a una categoría de error.
func ErrorToOutcome(category ErrorCategory) string {
	switch category {
	case CategoryValidation:
		return entity.OutcomeValidationError
	case CategoryAuth:
		return entity.OutcomeAuthError
	case CategoryDuplicate:
		return entity.OutcomeDuplicateError
	case CategoryTransient:
		return entity.OutcomeTimeout
	default:
		return entity.OutcomeUnknown
	}
}
