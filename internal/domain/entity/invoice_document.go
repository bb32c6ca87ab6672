package entity

import (
	"time"

	"github.com/jhoicas/Iris-api/pkg/iris"
)

// InvoiceDocument documento fiscal (factura de venta o nota) tal como se envió a IRIS.
// No se modifica tras su creación: un reenvío agrega intentos, no documentos.
type InvoiceDocument struct {
	ID                     string
	DocumentType           string // iris.DocumentType*
	ReferencedInvoiceRefNo string // obligatorio en notas débito/crédito
	InvoiceType            string // etiqueta IRIS, p.ej. "Sale Invoice"
	InvoiceDate            string // YYYY-MM-DD
	InvoiceRefNo           string
	ScenarioID             string

	SellerNTNCNIC      string
	SellerBusinessName string
	SellerProvince     string
	SellerAddress      string

	BuyerNTNCNIC          string
	BuyerBusinessName     string
	BuyerProvince         string
	BuyerAddress          string
	BuyerRegistrationType string

	Items     []InvoiceItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNote indica si el documento es una nota débito o crédito.
func (d *InvoiceDocument) IsNote() bool {
	return iris.IsNoteType(d.DocumentType)
}
