package entity

import "time"

// Resultados posibles de un intento de envío.
const (
	OutcomeSuccess         = "SUCCESS"
	OutcomeValidationError = "VALIDATION_ERROR"
	OutcomeAuthError       = "AUTH_ERROR"
	OutcomeDuplicateError  = "DUPLICATE_ERROR"
	OutcomeTimeout         = "TIMEOUT"
	OutcomeUnknown         = "UNKNOWN"
)

// AttemptEntry registro inmutable de un intento de envío a IRIS.
type AttemptEntry struct {
	ID              string
	Seq             int64 // orden de inserción asignado por el repositorio
	DocumentID      string
	InvoiceRefNo    string
	SellerNTNCNIC   string
	DocumentType    string
	AttemptNumber   int
	Timestamp       time.Time
	Endpoint        string
	Outcome         string
	DiagnosticID    string
	HTTPStatus      *int
	DurationMs      *int64
	ResponseSummary string
	ErrorDetails    string
}
