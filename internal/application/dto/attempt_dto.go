package dto

import "time"

// AttemptResponse entrada del ledger de intentos.
type AttemptResponse struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	InvoiceRefNo    string    `json:"invoice_ref_no"`
	SellerNTNCNIC   string    `json:"seller_ntn_cnic"`
	DocumentType    string    `json:"document_type"`
	AttemptNumber   int       `json:"attempt_number"`
	Timestamp       time.Time `json:"timestamp"`
	Endpoint        string    `json:"endpoint"`
	Outcome         string    `json:"outcome"`
	DiagnosticID    string    `json:"diagnostic_id"`
	HTTPStatus      *int      `json:"http_status,omitempty"`
	DurationMs      *int64    `json:"duration_ms,omitempty"`
	ResponseSummary string    `json:"response_summary,omitempty"`
	ErrorDetails    string    `json:"error_details,omitempty"`
}

// AttemptFilter parámetros de GET /api/attempts.
type AttemptFilter struct {
	Query   string `query:"q"`
	Outcome string `query:"outcome" validate:"omitempty,oneof=SUCCESS VALIDATION_ERROR AUTH_ERROR DUPLICATE_ERROR TIMEOUT UNKNOWN"`
}
