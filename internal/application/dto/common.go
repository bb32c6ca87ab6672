package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	DiagnosticID string   `json:"diagnostic_id,omitempty"`
	Details      []string `json:"details,omitempty"`
}
