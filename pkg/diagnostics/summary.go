package diagnostics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultSummaryLength longitud máxima por defecto de un resumen de respuesta.
	DefaultSummaryLength = 500
	// NoResponseBody texto usado cuando la respuesta no trae cuerpo.
	NoResponseBody = "No response body"
	// TruncatedSuffix se añade a los resúmenes recortados.
	TruncatedSuffix = "... [truncated]"
)

// SummarizeDefault es Summarize con DefaultSummaryLength.
func SummarizeDefault(response any) string {
	return Summarize(response, DefaultSummaryLength)
}

// Summarize produce un resumen de longitud acotada de una respuesta arbitraria, apto para logs y
// para el ledger: todo valor que serializa como objeto JSON (mapas de cualquier tipo, structs) se
// redacta antes de serializarse y el resultado se recorta a
// maxLength caracteres (más TruncatedSuffix). maxLength <= 0 desactiva el recorte.
func Summarize(response any, maxLength int) string {
	if response == nil {
		return NoResponseBody
	}

	var summary string
	switch v := response.(type) {
	case string:
		summary = v
	case []byte:
		summary = string(v)
	case map[string]any:
		summary = serialize(Redact(v))
	default:
		summary = serializeRedacted(v)
	}

	if maxLength > 0 && utf8.RuneCountInString(summary) > maxLength {
		runes := []rune(summary)
		return string(runes[:maxLength]) + TruncatedSuffix
	}
	return summary
}

// serializeRedacted serializa v y, si el resultado es un objeto JSON, lo vuelve a decodificar
// para redactarlo. UseNumber conserva los números tal como venían.
func serializeRedacted(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return string(raw)
	}
	return serialize(Redact(obj))
}

func serialize(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
