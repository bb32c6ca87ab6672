// Package iris contiene las reglas de dominio de la facturación IRIS/FBR: validación de
// documentos y derivación de estado a partir del ledger de intentos. Usa catálogos de pkg/iris.
package iris

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/pkg/iris"
)

// ErrInvalidDocument agrupa errores de validación de documento.
var ErrInvalidDocument = errors.New("documento inválido para IRIS")

// InvoiceDateLayout formato de fecha que exige IRIS.
const InvoiceDateLayout = "2006-01-02"

// ValidateDocument valida cabecera, partes e ítems del documento antes de enviarlo.
// Devuelve todos los problemas encontrados unidos con errors.Join, precedidos de ErrInvalidDocument.
func ValidateDocument(doc *entity.InvoiceDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: documento nulo", ErrInvalidDocument)
	}
	var errs []error
	required := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s es obligatorio", name))
		}
	}

	if _, ok := iris.InvoiceTypeLabels[doc.DocumentType]; !ok {
		errs = append(errs, fmt.Errorf("tipo de documento desconocido: %q", doc.DocumentType))
	}
	if doc.IsNote() && strings.TrimSpace(doc.ReferencedInvoiceRefNo) == "" {
		errs = append(errs, errors.New("las notas débito/crédito deben referenciar una factura"))
	}
	required("invoiceType", doc.InvoiceType)

	if _, err := time.Parse(InvoiceDateLayout, doc.InvoiceDate); err != nil {
		errs = append(errs, fmt.Errorf("invoiceDate debe tener formato YYYY-MM-DD: %q", doc.InvoiceDate))
	}
	if !iris.ValidateRefNoFormat(doc.InvoiceRefNo) {
		errs = append(errs, fmt.Errorf("invoiceRefNo inválido: %q", doc.InvoiceRefNo))
	}

	if err := iris.ValidateNTNCNIC(doc.SellerNTNCNIC); err != nil {
		errs = append(errs, fmt.Errorf("vendedor: %w", err))
	}
	required("sellerBusinessName", doc.SellerBusinessName)
	required("sellerProvince", doc.SellerProvince)
	required("sellerAddress", doc.SellerAddress)

	if err := iris.ValidateNTNCNIC(doc.BuyerNTNCNIC); err != nil {
		errs = append(errs, fmt.Errorf("comprador: %w", err))
	}
	required("buyerBusinessName", doc.BuyerBusinessName)
	required("buyerProvince", doc.BuyerProvince)
	required("buyerAddress", doc.BuyerAddress)
	if doc.BuyerRegistrationType != iris.RegistrationRegistered && doc.BuyerRegistrationType != iris.RegistrationUnregistered {
		errs = append(errs, fmt.Errorf("buyerRegistrationType inválido: %q", doc.BuyerRegistrationType))
	}

	if len(doc.Items) == 0 {
		errs = append(errs, errors.New("el documento debe tener al menos un ítem"))
	}
	for i := range doc.Items {
		if err := validateItem(&doc.Items[i]); err != nil {
			errs = append(errs, fmt.Errorf("ítem %d: %w", i+1, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidDocument}, errs...)...)
	}
	return nil
}

func validateItem(it *entity.InvoiceItem) error {
	var errs []error
	texts := []struct{ name, value string }{
		{"hsCode", it.HSCode},
		{"productDescription", it.ProductDescription},
		{"rate", it.Rate},
		{"uoM", it.UoM},
	}
	for _, f := range texts {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s es obligatorio", f.name))
		}
	}
	amounts := []struct {
		name  string
		value interface{ IsNegative() bool }
	}{
		{"quantity", it.Quantity},
		{"totalValues", it.TotalValues},
		{"valueSalesExcludingST", it.ValueSalesExcludingST},
		{"fixedNotifiedValueOrRetailPrice", it.FixedNotifiedValueOrRetailPrice},
		{"salesTaxApplicable", it.SalesTaxApplicable},
		{"salesTaxWithheldAtSource", it.SalesTaxWithheldAtSource},
		{"furtherTax", it.FurtherTax},
		{"fedPayable", it.FEDPayable},
		{"discount", it.Discount},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			errs = append(errs, fmt.Errorf("%s no puede ser negativo", a.name))
		}
	}
	if !iris.ValidSaleTypes[it.SaleType] {
		errs = append(errs, fmt.Errorf("saleType inválido: %q", it.SaleType))
	}
	return errors.Join(errs...)
}
