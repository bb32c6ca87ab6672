package dto

// RefNoCheckResponse respuesta de GET /api/refno/check.
type RefNoCheckResponse struct {
	RefNo   string `json:"ref_no"`
	Used    bool   `json:"used"`
	Status  string `json:"status,omitempty"` // estado derivado si ya se usó
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
	// Attempts historial de la referencia, más recientes primero.
	Attempts []AttemptResponse `json:"attempts,omitempty"`
}

// RefNoSuggestionResponse respuesta de GET /api/refno/suggest.
type RefNoSuggestionResponse struct {
	LastSuccessfulRefNo string `json:"last_successful_ref_no,omitempty"`
	Suggestion          string `json:"suggestion,omitempty"`
	Available           bool   `json:"available"`
}

// ReferenceValidationResponse respuesta de GET /api/refno/reference (para notas).
type ReferenceValidationResponse struct {
	RefNo  string `json:"ref_no"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
