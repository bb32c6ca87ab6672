package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea de un documento. Los totales los aporta el usuario; no se recalculan.
type InvoiceItem struct {
	ID                              string
	DocumentID                      string
	LineNo                          int
	HSCode                          string
	ProductDescription              string
	Rate                            string // p.ej. "18%"
	UoM                             string
	Quantity                        decimal.Decimal
	TotalValues                     decimal.Decimal
	ValueSalesExcludingST           decimal.Decimal
	FixedNotifiedValueOrRetailPrice decimal.Decimal
	SalesTaxApplicable              decimal.Decimal
	SalesTaxWithheldAtSource        decimal.Decimal
	ExtraTax                        string
	FurtherTax                      decimal.Decimal
	SROScheduleNo                   string
	FEDPayable                      decimal.Decimal
	Discount                        decimal.Decimal
	SaleType                        string
	SROItemSerialNo                 string
}
