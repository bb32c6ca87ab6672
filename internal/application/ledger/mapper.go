package ledger

import (
	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// AttemptToResponse traduce un intento del ledger al DTO de respuesta.
func AttemptToResponse(a *entity.AttemptEntry) dto.AttemptResponse {
	return dto.AttemptResponse{
		ID:              a.ID,
		DocumentID:      a.DocumentID,
		InvoiceRefNo:    a.InvoiceRefNo,
		SellerNTNCNIC:   a.SellerNTNCNIC,
		DocumentType:    a.DocumentType,
		AttemptNumber:   a.AttemptNumber,
		Timestamp:       a.Timestamp,
		Endpoint:        a.Endpoint,
		Outcome:         a.Outcome,
		DiagnosticID:    a.DiagnosticID,
		HTTPStatus:      a.HTTPStatus,
		DurationMs:      a.DurationMs,
		ResponseSummary: a.ResponseSummary,
		ErrorDetails:    a.ErrorDetails,
	}
}

// AttemptsToResponse traduce una lista conservando el orden.
func AttemptsToResponse(list []*entity.AttemptEntry) []dto.AttemptResponse {
	out := make([]dto.AttemptResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AttemptToResponse(a))
	}
	return out
}

// ViewToResponse documento con estado, ítems e intentos (si la vista los trae).
func ViewToResponse(v *DocumentView) *dto.DocumentResponse {
	d := v.Document
	resp := &dto.DocumentResponse{
		ID:                     d.ID,
		DocumentType:           d.DocumentType,
		ReferencedInvoiceRefNo: d.ReferencedInvoiceRefNo,
		InvoiceType:            d.InvoiceType,
		InvoiceDate:            d.InvoiceDate,
		InvoiceRefNo:           d.InvoiceRefNo,
		ScenarioID:             d.ScenarioID,
		SellerNTNCNIC:          d.SellerNTNCNIC,
		SellerBusinessName:     d.SellerBusinessName,
		SellerProvince:         d.SellerProvince,
		SellerAddress:          d.SellerAddress,
		BuyerNTNCNIC:           d.BuyerNTNCNIC,
		BuyerBusinessName:      d.BuyerBusinessName,
		BuyerProvince:          d.BuyerProvince,
		BuyerAddress:           d.BuyerAddress,
		BuyerRegistrationType:  d.BuyerRegistrationType,
		Status:                 v.Status,
		CreatedAt:              d.CreatedAt,
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, itemToResponse(it))
	}
	if v.LastAttempt != nil {
		last := AttemptToResponse(v.LastAttempt)
		resp.LastAttempt = &last
	}
	if len(v.Attempts) > 0 {
		resp.Attempts = AttemptsToResponse(v.Attempts)
	}
	return resp
}

func itemToResponse(it entity.InvoiceItem) dto.InvoiceItemResponse {
	return dto.InvoiceItemResponse{
		LineNo:                          it.LineNo,
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
	}
}

// SummaryToResponse resumen del dashboard.
func SummaryToResponse(s *Summary) dto.DashboardSummaryDTO {
	return dto.DashboardSummaryDTO{
		TotalDocuments:      s.TotalDocuments,
		Success:             s.ByStatus[entity.DocumentStatusSuccess],
		Failed:              s.ByStatus[entity.DocumentStatusFailed],
		Unknown:             s.ByStatus[entity.DocumentStatusUnknown],
		Draft:               s.ByStatus[entity.DocumentStatusDraft],
		TotalAttempts:       s.TotalAttempts,
		LastSuccessfulRefNo: s.LastSuccessfulRefNo,
		SuggestedRefNo:      s.SuggestedRefNo,
		RecentAttempts:      AttemptsToResponse(s.RecentAttempts),
	}
}
