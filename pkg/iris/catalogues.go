// Package iris contiene catálogos, validaciones y algoritmos puros de la facturación
// digital IRIS/FBR (Pakistán). No depende de ninguna capa interna.
package iris

// =============================================================================
// Tipos de documento
// =============================================================================

const (
	DocumentTypeSaleInvoice = "SALE_INVOICE"
	DocumentTypeDebitNote   = "DEBIT_NOTE"
	DocumentTypeCreditNote  = "CREDIT_NOTE"
)

// InvoiceTypeLabels etiqueta invoiceType que espera la API IRIS para cada tipo de documento.
var InvoiceTypeLabels = map[string]string{
	DocumentTypeSaleInvoice: "Sale Invoice",
	DocumentTypeDebitNote:   "Debit Note",
	DocumentTypeCreditNote:  "Credit Note",
}

// IsNoteType informa si el tipo de documento es una nota (débito o crédito) y por lo tanto
// debe referenciar una factura de venta original.
func IsNoteType(documentType string) bool {
	return documentType == DocumentTypeDebitNote || documentType == DocumentTypeCreditNote
}

// =============================================================================
// Comprador
// =============================================================================

const (
	RegistrationRegistered   = "Registered"
	RegistrationUnregistered = "Unregistered"
)

// =============================================================================
// Tipos de venta por línea
// =============================================================================

const (
	SaleTypeLocal     = "Local"
	SaleTypeExport    = "Export"
	SaleTypeZeroRated = "Zero-Rated"
)

// ValidSaleTypes incluye el valor vacío: el campo es opcional en el formulario.
var ValidSaleTypes = map[string]bool{
	SaleTypeLocal: true, SaleTypeExport: true, SaleTypeZeroRated: true, "": true,
}

// =============================================================================
// Provincias
// =============================================================================

var Provinces = []string{
	"Punjab",
	"Sindh",
	"Khyber Pakhtunkhwa",
	"Balochistan",
	"Islamabad Capital Territory",
	"Gilgit-Baltistan",
	"Azad Jammu and Kashmir",
}

// DefaultScenarioID escenario de pruebas por defecto del sandbox IRIS.
const DefaultScenarioID = "SN000"

// SubmitPath ruta relativa del endpoint de envío sobre la URL base.
const SubmitPath = "/invoices/submit"

// HealthPath ruta relativa del endpoint de salud sobre la URL base.
const HealthPath = "/health"

// DiagnosticHeader cabecera HTTP con el identificador de diagnóstico de cada intento.
const DiagnosticHeader = "X-Diagnostic-Id"
