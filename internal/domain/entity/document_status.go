package entity

// Estados derivados del historial de intentos de un documento.
const (
	DocumentStatusDraft   = "DRAFT"
	DocumentStatusSuccess = "SUCCESS"
	DocumentStatusFailed  = "FAILED"
	DocumentStatusUnknown = "UNKNOWN"
)
