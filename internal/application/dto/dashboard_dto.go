package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard: conteo de documentos por estado derivado,
// actividad reciente del ledger y la próxima referencia sugerida.
type DashboardSummaryDTO struct {
	TotalDocuments int `json:"total_documents"`
	Success        int `json:"success"`
	Failed         int `json:"failed"`
	Unknown        int `json:"unknown"`
	Draft          int `json:"draft"`
	TotalAttempts  int `json:"total_attempts"`

	LastSuccessfulRefNo string `json:"last_successful_ref_no,omitempty"`
	SuggestedRefNo      string `json:"suggested_ref_no,omitempty"`

	RecentAttempts []AttemptResponse `json:"recent_attempts"`
}
