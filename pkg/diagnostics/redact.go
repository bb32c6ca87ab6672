package diagnostics

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RedactedMarker reemplaza el valor de cualquier campo sensible.
const RedactedMarker = "[REDACTED]"

// sensitiveFields subcadenas que marcan una clave como sensible (comparación en minúsculas).
var sensitiveFields = []string{
	"password",
	"token",
	"bearer",
	"authorization",
	"secret",
	"key",
	"credential",
	"apikey",
	"api_key",
}

// Redact devuelve una copia de data en la que toda clave sensible tiene su valor reemplazado
// por RedactedMarker. Los mapas anidados con clave string se redactan recursivamente, sea cual
// sea su tipo de valor (http.Header, fiber.Map, map[string]int...); los que no son
// map[string]any ni map[string]string se copian como map[string]any. Slices y escalares se
// copian tal cual. No modifica data. Redact(Redact(x)) == Redact(x).
func Redact(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	// Un Caser no es seguro entre goroutines: uno por llamada.
	lower := cases.Lower(language.Und)
	return redactMap(data, lower)
}

// IsSensitiveKey informa si la clave contiene alguna de las subcadenas sensibles.
func IsSensitiveKey(key string) bool {
	return isSensitive(key, cases.Lower(language.Und))
}

func redactMap(data map[string]any, lower cases.Caser) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if isSensitive(k, lower) {
			out[k] = RedactedMarker
			continue
		}
		switch nested := v.(type) {
		case map[string]any:
			out[k] = redactMap(nested, lower)
		case map[string]string:
			out[k] = redactStringMap(nested, lower)
		default:
			if m, ok := stringKeyedMap(v); ok {
				out[k] = redactMap(m, lower)
				continue
			}
			out[k] = v
		}
	}
	return out
}

// stringKeyedMap copia a map[string]any cualquier mapa cuya clave sea de tipo string.
func stringKeyedMap(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func redactStringMap(data map[string]string, lower cases.Caser) map[string]string {
	if data == nil {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		if isSensitive(k, lower) {
			out[k] = RedactedMarker
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitive(key string, lower cases.Caser) bool {
	k := lower.String(key)
	for _, field := range sensitiveFields {
		if strings.Contains(k, field) {
			return true
		}
	}
	return false
}
