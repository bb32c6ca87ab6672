package iris

import "fmt"

// Longitudes válidas para NTN (7 dígitos) y CNIC (13 dígitos) según el portal IRIS.
const (
	MinNTNCNICDigits = 7
	MaxNTNCNICDigits = 13
)

// ValidateNTNCNIC valida que el identificador tributario tenga entre 7 y 13 dígitos, sin
// separadores.
func ValidateNTNCNIC(id string) error {
	if id == "" {
		return fmt.Errorf("iris: NTN/CNIC requerido")
	}
	for i := 0; i < len(id); i++ {
		if !isASCIIDigit(id[i]) {
			return fmt.Errorf("iris: NTN/CNIC solo admite dígitos, se recibió %q", id)
		}
	}
	if len(id) < MinNTNCNICDigits || len(id) > MaxNTNCNICDigits {
		return fmt.Errorf("iris: NTN/CNIC debe tener entre %d y %d dígitos, se recibieron %d",
			MinNTNCNICDigits, MaxNTNCNICDigits, len(id))
	}
	return nil
}
