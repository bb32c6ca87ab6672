package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest body de POST /api/invoices. Los datos del vendedor salen de la identidad
// configurada, no del request.
type CreateDocumentRequest struct {
	DocumentType           string `json:"document_type" validate:"required,oneof=SALE_INVOICE DEBIT_NOTE CREDIT_NOTE"`
	ReferencedInvoiceRefNo string `json:"referenced_invoice_ref_no" validate:"required_unless=DocumentType SALE_INVOICE"`
	InvoiceType            string `json:"invoice_type,omitempty"` // por defecto la etiqueta del tipo de documento
	InvoiceDate            string `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	InvoiceRefNo           string `json:"invoice_ref_no" validate:"required,refno"`
	ScenarioID             string `json:"scenario_id,omitempty"` // por defecto SN000

	BuyerNTNCNIC          string `json:"buyer_ntn_cnic" validate:"required,ntncnic"`
	BuyerBusinessName     string `json:"buyer_business_name" validate:"required"`
	BuyerProvince         string `json:"buyer_province" validate:"required"`
	BuyerAddress          string `json:"buyer_address" validate:"required"`
	BuyerRegistrationType string `json:"buyer_registration_type" validate:"required,oneof=Registered Unregistered"`

	Items []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest línea del documento. Totales aportados por el usuario.
type InvoiceItemRequest struct {
	HSCode                          string          `json:"hs_code" validate:"required"`
	ProductDescription              string          `json:"product_description" validate:"required"`
	Rate                            string          `json:"rate" validate:"required"`
	UoM                             string          `json:"uom" validate:"required"`
	Quantity                        decimal.Decimal `json:"quantity" validate:"gte=0"`
	TotalValues                     decimal.Decimal `json:"total_values" validate:"gte=0"`
	ValueSalesExcludingST           decimal.Decimal `json:"value_sales_excluding_st" validate:"gte=0"`
	FixedNotifiedValueOrRetailPrice decimal.Decimal `json:"fixed_notified_value_or_retail_price" validate:"gte=0"`
	SalesTaxApplicable              decimal.Decimal `json:"sales_tax_applicable" validate:"gte=0"`
	SalesTaxWithheldAtSource        decimal.Decimal `json:"sales_tax_withheld_at_source" validate:"gte=0"`
	ExtraTax                        string          `json:"extra_tax"`
	FurtherTax                      decimal.Decimal `json:"further_tax" validate:"gte=0"`
	SROScheduleNo                   string          `json:"sro_schedule_no"`
	FEDPayable                      decimal.Decimal `json:"fed_payable" validate:"gte=0"`
	Discount                        decimal.Decimal `json:"discount" validate:"gte=0"`
	SaleType                        string          `json:"sale_type" validate:"omitempty,oneof=Local Export Zero-Rated"`
	SROItemSerialNo                 string          `json:"sro_item_serial_no"`
}

// DocumentResponse documento con su estado derivado del ledger.
type DocumentResponse struct {
	ID                     string                `json:"id"`
	DocumentType           string                `json:"document_type"`
	ReferencedInvoiceRefNo string                `json:"referenced_invoice_ref_no,omitempty"`
	InvoiceType            string                `json:"invoice_type"`
	InvoiceDate            string                `json:"invoice_date"`
	InvoiceRefNo           string                `json:"invoice_ref_no"`
	ScenarioID             string                `json:"scenario_id"`
	SellerNTNCNIC          string                `json:"seller_ntn_cnic"`
	SellerBusinessName     string                `json:"seller_business_name"`
	SellerProvince         string                `json:"seller_province"`
	SellerAddress          string                `json:"seller_address"`
	BuyerNTNCNIC           string                `json:"buyer_ntn_cnic"`
	BuyerBusinessName      string                `json:"buyer_business_name"`
	BuyerProvince          string                `json:"buyer_province"`
	BuyerAddress           string                `json:"buyer_address"`
	BuyerRegistrationType  string                `json:"buyer_registration_type"`
	Status                 string                `json:"status"`
	Items                  []InvoiceItemResponse `json:"items,omitempty"`
	LastAttempt            *AttemptResponse      `json:"last_attempt,omitempty"`
	Attempts               []AttemptResponse     `json:"attempts,omitempty"`
	CreatedAt              time.Time             `json:"created_at"`
}

// InvoiceItemResponse línea del documento en respuestas.
type InvoiceItemResponse struct {
	LineNo                          int             `json:"line_no"`
	HSCode                          string          `json:"hs_code"`
	ProductDescription              string          `json:"product_description"`
	Rate                            string          `json:"rate"`
	UoM                             string          `json:"uom"`
	Quantity                        decimal.Decimal `json:"quantity"`
	TotalValues                     decimal.Decimal `json:"total_values"`
	ValueSalesExcludingST           decimal.Decimal `json:"value_sales_excluding_st"`
	FixedNotifiedValueOrRetailPrice decimal.Decimal `json:"fixed_notified_value_or_retail_price"`
	SalesTaxApplicable              decimal.Decimal `json:"sales_tax_applicable"`
	SalesTaxWithheldAtSource        decimal.Decimal `json:"sales_tax_withheld_at_source"`
	ExtraTax                        string          `json:"extra_tax"`
	FurtherTax                      decimal.Decimal `json:"further_tax"`
	SROScheduleNo                   string          `json:"sro_schedule_no"`
	FEDPayable                      decimal.Decimal `json:"fed_payable"`
	Discount                        decimal.Decimal `json:"discount"`
	SaleType                        string          `json:"sale_type"`
	SROItemSerialNo                 string          `json:"sro_item_serial_no"`
}

// SubmitResultDTO resultado de un ciclo de envío (POST /api/invoices y /resubmit).
type SubmitResultDTO struct {
	DocumentID    string          `json:"document_id"`
	InvoiceRefNo  string          `json:"invoice_ref_no"`
	Success       bool            `json:"success"`
	Status        string          `json:"status"`
	Attempts      int             `json:"attempts"`
	DiagnosticID  string          `json:"diagnostic_id"`
	DurationMs    int64           `json:"duration_ms"`
	IRISReference string          `json:"iris_reference,omitempty"`
	Error         *SubmitErrorDTO `json:"error,omitempty"`
}

// SubmitErrorDTO fallo terminal del ciclo, tal como lo clasificó el cliente IRIS.
type SubmitErrorDTO struct {
	Category    string          `json:"category"`
	Message     string          `json:"message"`
	HTTPStatus  int             `json:"http_status,omitempty"`
	FieldErrors []FieldErrorDTO `json:"field_errors,omitempty"`
}

// FieldErrorDTO error de validación devuelto por IRIS para un campo.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
