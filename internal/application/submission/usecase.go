// Package submission orquesta el ciclo completo de un documento: validación, bloqueo de
// referencias, persistencia, ensamblado, envío a IRIS y registro de cada intento en el ledger.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/application/ledger"
	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	domiris "github.com/jhoicas/Iris-api/internal/domain/iris"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
	"github.com/jhoicas/Iris-api/pkg/logger"
)

// SuccessSummary resumen guardado en el ledger para un intento aceptado.
const SuccessSummary = "Invoice submitted successfully"

// UseCase envío y reenvío de documentos.
//
// El chequeo de referencia y el primer intento no son atómicos: dos envíos simultáneos de la
// misma referencia pueden pasar ambos el chequeo. IRIS responde 409 al segundo.
type UseCase struct {
	docs    repository.DocumentRepository
	sellers repository.SellerIdentityRepository
	ledger  *ledger.Service
	client  Submitter
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	docs repository.DocumentRepository,
	sellers repository.SellerIdentityRepository,
	ledgerSvc *ledger.Service,
	client Submitter,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		docs:    docs,
		sellers: sellers,
		ledger:  ledgerSvc,
		client:  client,
		log:     log.With("submission"),
		now:     time.Now,
	}
}

// SubmitDocument crea el documento y ejecuta un ciclo de envío. Los errores devueltos son de
// precondición (vendedor sin configurar, datos inválidos, referencia bloqueada o nota con
// referencia inválida) o de persistencia; el resultado de IRIS, exitoso o no, va en el DTO.
func (uc *UseCase) SubmitDocument(ctx context.Context, in dto.CreateDocumentRequest) (*dto.SubmitResultDTO, error) {
	doc, err := uc.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.run(ctx, doc), nil
}

// SaveDraft crea el documento con las mismas validaciones que SubmitDocument pero sin enviarlo.
// Su estado derivado es DRAFT hasta el primer intento.
func (uc *UseCase) SaveDraft(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return ledger.ViewToResponse(&ledger.DocumentView{Document: doc, Status: entity.DocumentStatusDraft}), nil
}

// SubmitDraft envía por primera vez un borrador. Los chequeos de referencia se repiten: otro
// documento pudo usar la misma referencia mientras este seguía en borrador.
func (uc *UseCase) SubmitDraft(ctx context.Context, documentID string) (*dto.SubmitResultDTO, error) {
	view, err := uc.ledger.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	if view.Status != entity.DocumentStatusDraft {
		return nil, domain.ErrNotDraft
	}
	if err := uc.checkReferences(ctx, view.Document); err != nil {
		return nil, err
	}
	return uc.run(ctx, view.Document), nil
}

// DeleteDraft elimina un documento sin intentos. Los documentos enviados quedan en el ledger.
func (uc *UseCase) DeleteDraft(ctx context.Context, documentID string) error {
	if err := uc.docs.Delete(ctx, documentID); err != nil {
		return err
	}
	uc.log.Info("borrador eliminado", map[string]any{"documentId": documentID}, "")
	return nil
}

// create valida el request, aplica los chequeos de referencia y persiste el documento.
func (uc *UseCase) create(ctx context.Context, in dto.CreateDocumentRequest) (*entity.InvoiceDocument, error) {
	seller, err := uc.sellers.Get(ctx)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrSellerNotConfigured
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	doc := BuildDocument(in, seller, uc.now().UTC())
	if err := domiris.ValidateDocument(doc); err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	if err := uc.checkReferences(ctx, doc); err != nil {
		return nil, err
	}

	if err := uc.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("guardar documento: %w", err)
	}
	uc.log.Info("documento creado", map[string]any{
		"documentId":   doc.ID,
		"documentType": doc.DocumentType,
		"invoiceRefNo": doc.InvoiceRefNo,
	}, "")
	return doc, nil
}

// checkReferences rechaza referencias bloqueadas y notas que apuntan a una factura inválida.
func (uc *UseCase) checkReferences(ctx context.Context, doc *entity.InvoiceDocument) error {
	reason, err := uc.ledger.CheckRefNo(ctx, doc.InvoiceRefNo, doc.SellerNTNCNIC)
	if err != nil {
		return err
	}
	if reason != "" {
		return fmt.Errorf("%w: %s", domain.ErrRefNoBlocked, reason)
	}

	if doc.IsNote() {
		check, err := uc.ledger.IsReferencedInvoiceValid(ctx, doc.ReferencedInvoiceRefNo, doc.SellerNTNCNIC)
		if err != nil {
			return err
		}
		if !check.Valid {
			return fmt.Errorf("%w: %s", domain.ErrInvalidReference, check.Reason)
		}
	}
	return nil
}

// ResubmitDocument ejecuta un nuevo ciclo para un documento existente (los intentos vuelven a
// numerarse desde 1). Se rechaza si la referencia ya fue aceptada; UNKNOWN sí se permite aquí
// para poder reconciliar.
func (uc *UseCase) ResubmitDocument(ctx context.Context, documentID string) (*dto.SubmitResultDTO, error) {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	usage, err := uc.ledger.IsRefNoUsed(ctx, doc.InvoiceRefNo, doc.SellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	if usage.Status == entity.DocumentStatusSuccess {
		return nil, domain.ErrAlreadySubmitted
	}
	return uc.run(ctx, doc), nil
}

// run envía el documento y persiste cada intento. Un fallo al escribir el ledger se registra y
// no interrumpe el ciclo.
func (uc *UseCase) run(ctx context.Context, doc *entity.InvoiceDocument) *dto.SubmitResultDTO {
	endpoint := uc.client.Endpoint()
	attempts := 0

	onAttempt := func(r *infrairis.AttemptResult) {
		attempts++
		entry := attemptEntry(doc, r, endpoint, uc.now().UTC())
		if err := uc.ledger.SaveAttempt(ctx, entry); err != nil {
			uc.log.Error("no se pudo registrar el intento en el ledger", map[string]any{
				"documentId":    doc.ID,
				"attemptNumber": r.AttemptNumber,
				"error":         err.Error(),
			}, r.DiagnosticID)
		}
	}

	res := uc.client.Submit(ctx, MapDocumentToRequest(doc), onAttempt)
	return toResult(doc, res, attempts)
}

// attemptEntry traduce el resultado del cliente a una entrada del ledger.
func attemptEntry(doc *entity.InvoiceDocument, r *infrairis.AttemptResult, endpoint string, now time.Time) *entity.AttemptEntry {
	duration := r.DurationMs
	entry := &entity.AttemptEntry{
		DocumentID:    doc.ID,
		InvoiceRefNo:  doc.InvoiceRefNo,
		SellerNTNCNIC: doc.SellerNTNCNIC,
		DocumentType:  doc.DocumentType,
		AttemptNumber: r.AttemptNumber,
		Timestamp:     now,
		Endpoint:      endpoint,
		DiagnosticID:  r.DiagnosticID,
		DurationMs:    &duration,
	}
	if r.Success {
		entry.Outcome = entity.OutcomeSuccess
		entry.ResponseSummary = SuccessSummary
		return entry
	}

	entry.Outcome = infrairis.ErrorToOutcome(r.Error.Category)
	entry.ResponseSummary = r.Error.Message
	if r.Error.HTTPStatus > 0 {
		status := r.Error.HTTPStatus
		entry.HTTPStatus = &status
	}
	entry.ErrorDetails = errorDetails(r.Error)
	return entry
}

// errorDetails errores por campo en JSON si los hay; si no, el resumen de la respuesta cruda.
func errorDetails(e *infrairis.APIError) string {
	if len(e.FieldErrors) > 0 {
		if b, err := json.Marshal(e.FieldErrors); err == nil {
			return string(b)
		}
	}
	return e.RawResponse
}

func toResult(doc *entity.InvoiceDocument, res *infrairis.AttemptResult, attempts int) *dto.SubmitResultDTO {
	out := &dto.SubmitResultDTO{
		DocumentID:   doc.ID,
		InvoiceRefNo: doc.InvoiceRefNo,
		Success:      res.Success,
		Attempts:     attempts,
		DiagnosticID: res.DiagnosticID,
		DurationMs:   res.DurationMs,
	}
	if res.Success {
		out.Status = entity.DocumentStatusSuccess
		if ref, ok := res.Response["irisReference"].(string); ok {
			out.IRISReference = ref
		}
		return out
	}

	out.Status = domiris.StatusFromOutcome(infrairis.ErrorToOutcome(res.Error.Category))
	out.Error = &dto.SubmitErrorDTO{
		Category:   string(res.Error.Category),
		Message:    res.Error.Message,
		HTTPStatus: res.Error.HTTPStatus,
	}
	for _, fe := range res.Error.FieldErrors {
		out.Error.FieldErrors = append(out.Error.FieldErrors, dto.FieldErrorDTO{
			Field: fe.Field, Message: fe.Message, Code: fe.Code,
		})
	}
	return out
}
