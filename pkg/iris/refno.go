package iris

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxRefNoLength longitud máxima aceptada para un invoiceRefNo.
const MaxRefNoLength = 50

var refNoPattern = regexp.MustCompile(`^[A-Za-z0-9\-_/]+$`)

var one = decimal.NewFromInt(1)

// SuggestNextRefNo calcula el siguiente invoiceRefNo a partir del último enviado con éxito.
//
// Si la referencia termina en dígitos, incrementa ese número en 1 y conserva el ancho original
// rellenando con ceros a la izquierda ("INV-0009" → "INV-0010"). El ancho es un mínimo, no un
// máximo: "INV-9999" → "INV-10000". Sin dígitos finales (o entrada vacía) no hay sugerencia y
// el segundo valor es false.
func SuggestNextRefNo(lastRefNo string) (string, bool) {
	if lastRefNo == "" {
		return "", false
	}

	cut := len(lastRefNo)
	for cut > 0 && isASCIIDigit(lastRefNo[cut-1]) {
		cut--
	}
	if cut == len(lastRefNo) {
		return "", false
	}
	prefix, digits := lastRefNo[:cut], lastRefNo[cut:]

	// decimal en lugar de strconv: tramos de más de 19 dígitos no desbordan.
	n, err := decimal.NewFromString(digits)
	if err != nil {
		return "", false
	}
	next := n.Add(one).String()
	if pad := len(digits) - len(next); pad > 0 {
		next = strings.Repeat("0", pad) + next
	}
	return prefix + next, true
}

// ValidateRefNoFormat indica si refNo es un invoiceRefNo aceptable: no vacío, máximo 50
// caracteres, alfanumérico con guiones, guiones bajos o barras.
func ValidateRefNoFormat(refNo string) bool {
	if refNo == "" || len(refNo) > MaxRefNoLength {
		return false
	}
	return refNoPattern.MatchString(refNo)
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
