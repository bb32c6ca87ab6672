package submission

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
	"github.com/jhoicas/Iris-api/pkg/iris"
)

// BuildDocument arma el documento inmutable a partir del request y la identidad del vendedor:
// id nuevo, marcas de tiempo, etiqueta invoiceType y escenario por defecto.
func BuildDocument(in dto.CreateDocumentRequest, seller *entity.SellerIdentity, now time.Time) *entity.InvoiceDocument {
	invoiceType := strings.TrimSpace(in.InvoiceType)
	if invoiceType == "" {
		invoiceType = iris.InvoiceTypeLabels[in.DocumentType]
	}
	scenario := strings.TrimSpace(in.ScenarioID)
	if scenario == "" {
		scenario = iris.DefaultScenarioID
	}
	referenced := ""
	if iris.IsNoteType(in.DocumentType) {
		referenced = strings.TrimSpace(in.ReferencedInvoiceRefNo)
	}

	doc := &entity.InvoiceDocument{
		ID:                     uuid.New().String(),
		DocumentType:           in.DocumentType,
		ReferencedInvoiceRefNo: referenced,
		InvoiceType:            invoiceType,
		InvoiceDate:            in.InvoiceDate,
		InvoiceRefNo:           strings.TrimSpace(in.InvoiceRefNo),
		ScenarioID:             scenario,
		SellerNTNCNIC:          seller.NTNCNIC,
		SellerBusinessName:     seller.BusinessName,
		SellerProvince:         seller.Province,
		SellerAddress:          seller.Address,
		BuyerNTNCNIC:           strings.TrimSpace(in.BuyerNTNCNIC),
		BuyerBusinessName:      in.BuyerBusinessName,
		BuyerProvince:          in.BuyerProvince,
		BuyerAddress:           in.BuyerAddress,
		BuyerRegistrationType:  in.BuyerRegistrationType,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	doc.Items = make([]entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		doc.Items = append(doc.Items, entity.InvoiceItem{
			ID:                              uuid.New().String(),
			DocumentID:                      doc.ID,
			LineNo:                          i + 1,
			HSCode:                          it.HSCode,
			ProductDescription:              it.ProductDescription,
			Rate:                            it.Rate,
			UoM:                             it.UoM,
			Quantity:                        it.Quantity,
			TotalValues:                     it.TotalValues,
			ValueSalesExcludingST:           it.ValueSalesExcludingST,
			FixedNotifiedValueOrRetailPrice: it.FixedNotifiedValueOrRetailPrice,
			SalesTaxApplicable:              it.SalesTaxApplicable,
			SalesTaxWithheldAtSource:        it.SalesTaxWithheldAtSource,
			ExtraTax:                        it.ExtraTax,
			FurtherTax:                      it.FurtherTax,
			SROScheduleNo:                   it.SROScheduleNo,
			FEDPayable:                      it.FEDPayable,
			Discount:                        it.Discount,
			SaleType:                        it.SaleType,
			SROItemSerialNo:                 it.SROItemSerialNo,
		})
	}
	return doc
}

// MapDocumentToRequest copia cabecera, partes, referencia, escenario e ítems al formato de envío.
// DocumentType y ReferencedInvoiceRefNo no forman parte del cuerpo de envío.
func MapDocumentToRequest(doc *entity.InvoiceDocument) infrairis.SubmitInvoiceRequest {
	req := infrairis.SubmitInvoiceRequest{
		InvoiceType:           doc.InvoiceType,
		InvoiceDate:           doc.InvoiceDate,
		SellerNTNCNIC:         doc.SellerNTNCNIC,
		SellerBusinessName:    doc.SellerBusinessName,
		SellerProvince:        doc.SellerProvince,
		SellerAddress:         doc.SellerAddress,
		BuyerNTNCNIC:          doc.BuyerNTNCNIC,
		BuyerBusinessName:     doc.BuyerBusinessName,
		BuyerProvince:         doc.BuyerProvince,
		BuyerAddress:          doc.BuyerAddress,
		BuyerRegistrationType: doc.BuyerRegistrationType,
		InvoiceRefNo:          doc.InvoiceRefNo,
		ScenarioID:            doc.ScenarioID,
		Items:                 make([]infrairis.SubmitInvoiceItem, 0, len(doc.Items)),
	}
	for _, it := range doc.Items {
		req.Items = append(req.Items, infrairis.SubmitInvoiceItem{
			HSCode:                          it.HSCode,
			ProductDescription:              it.ProductDescription,
			Rate:                            it.Rate,
			UoM:                             it.UoM,
			Quantity:                        number(it.Quantity),
			TotalValues:                     number(it.TotalValues),
			ValueSalesExcludingST:           number(it.ValueSalesExcludingST),
			FixedNotifiedValueOrRetailPrice: number(it.FixedNotifiedValueOrRetailPrice),
			SalesTaxApplicable:              number(it.SalesTaxApplicable),
			SalesTaxWithheldAtSource:        number(it.SalesTaxWithheldAtSource),
			ExtraTax:                        it.ExtraTax,
			FurtherTax:                      number(it.FurtherTax),
			SROScheduleNo:                   it.SROScheduleNo,
			FEDPayable:                      number(it.FEDPayable),
			Discount:                        number(it.Discount),
			SaleType:                        it.SaleType,
			SROItemSerialNo:                 it.SROItemSerialNo,
		})
	}
	return req
}

// number representa el decimal como número JSON sin pasar por float64.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
