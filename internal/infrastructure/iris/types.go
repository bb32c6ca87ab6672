// Package iris implementa el cliente HTTP hacia la API de facturación digital IRIS/FBR (o el BFF
// que la expone): envío con timeout y reintentos, clasificación de errores y health check.
package iris

import (
	"encoding/json"
	"fmt"
)

// ErrorCategory taxonomía de fallos de envío.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryAuth       ErrorCategory = "AUTH"
	CategoryDuplicate  ErrorCategory = "DUPLICATE"
	CategoryTransient  ErrorCategory = "TRANSIENT"
	CategoryUnknown    ErrorCategory = "UNKNOWN"
)

// FieldError error de validación sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError fallo clasificado de un intento. Solo los TRANSIENT de transporte o timeout son
// Retryable.
type APIError struct {
	Category     ErrorCategory `json:"category"`
	Message      string        `json:"message"`
	DiagnosticID string        `json:"diagnosticId"`
	HTTPStatus   int           `json:"httpStatus,omitempty"` // 0 si no hubo respuesta
	FieldErrors  []FieldError  `json:"fieldErrors,omitempty"`
	RawResponse  string        `json:"rawResponse,omitempty"`
	Retryable    bool          `json:"retryable"`
}

func (e *APIError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("iris %s (%d): %s", e.Category, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("iris %s: %s", e.Category, e.Message)
}

// SubmitInvoiceRequest cuerpo JSON de POST /invoices/submit.
type SubmitInvoiceRequest struct {
	InvoiceType           string              `json:"invoiceType"`
	InvoiceDate           string              `json:"invoiceDate"`
	SellerNTNCNIC         string              `json:"sellerNTNCNIC"`
	SellerBusinessName    string              `json:"sellerBusinessName"`
	SellerProvince        string              `json:"sellerProvince"`
	SellerAddress         string              `json:"sellerAddress"`
	BuyerNTNCNIC          string              `json:"buyerNTNCNIC"`
	BuyerBusinessName     string              `json:"buyerBusinessName"`
	BuyerProvince         string              `json:"buyerProvince"`
	BuyerAddress          string              `json:"buyerAddress"`
	BuyerRegistrationType string              `json:"buyerRegistrationType"`
	InvoiceRefNo          string              `json:"invoiceRefNo"`
	ScenarioID            string              `json:"scenarioId"`
	Items                 []SubmitInvoiceItem `json:"items"`
}

// SubmitInvoiceItem línea del cuerpo de envío. Los importes viajan como números JSON.
type SubmitInvoiceItem struct {
	HSCode                          string      `json:"hsCode"`
	ProductDescription              string      `json:"productDescription"`
	Rate                            string      `json:"rate"`
	UoM                             string      `json:"uoM"`
	Quantity                        json.Number `json:"quantity"`
	TotalValues                     json.Number `json:"totalValues"`
	ValueSalesExcludingST           json.Number `json:"valueSalesExcludingST"`
	FixedNotifiedValueOrRetailPrice json.Number `json:"fixedNotifiedValueOrRetailPrice"`
	SalesTaxApplicable              json.Number `json:"salesTaxApplicable"`
	SalesTaxWithheldAtSource        json.Number `json:"salesTaxWithheldAtSource"`
	ExtraTax                        string      `json:"extraTax"`
	FurtherTax                      json.Number `json:"furtherTax"`
	SROScheduleNo                   string      `json:"sroScheduleNo"`
	FEDPayable                      json.Number `json:"fedPayable"`
	Discount                        json.Number `json:"discount"`
	SaleType                        string      `json:"saleType"`
	SROItemSerialNo                 string      `json:"sroItemSerialNo"`
}

// AttemptResult resultado de un intento (o del ciclo completo cuando lo devuelve Submit).
type AttemptResult struct {
	Success       bool           `json:"success"`
	Response      map[string]any `json:"response,omitempty"` // sobre de éxito; nil si falló
	Error         *APIError      `json:"error,omitempty"`    // nil si tuvo éxito
	AttemptNumber int            `json:"attemptNumber"`
	DiagnosticID  string         `json:"diagnosticId"`
	DurationMs    int64          `json:"durationMs"`
}
