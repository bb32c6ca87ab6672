// Package ledger expone el historial de intentos de envío: estado derivado de cada referencia,
// bloqueo de reutilización, validación de facturas referenciadas por notas y sugerencia de la
// próxima referencia.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
	domiris "github.com/jhoicas/Iris-api/internal/domain/iris"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
	"github.com/jhoicas/Iris-api/pkg/iris"
)

// Service casos de uso de lectura y escritura del ledger. No guarda estado propio.
type Service struct {
	docs     repository.DocumentRepository
	attempts repository.AttemptRepository
}

// NewService construye el servicio con los puertos de persistencia.
func NewService(docs repository.DocumentRepository, attempts repository.AttemptRepository) *Service {
	return &Service{docs: docs, attempts: attempts}
}

// RefNoUsage resultado de IsRefNoUsed. Status vacío cuando Used es false.
type RefNoUsage struct {
	Used   bool
	Status string
}

// ReferenceCheck resultado de IsReferencedInvoiceValid.
type ReferenceCheck struct {
	Valid  bool
	Reason string
}

// SaveAttempt agrega un intento al ledger.
func (s *Service) SaveAttempt(ctx context.Context, a *entity.AttemptEntry) error {
	if err := s.attempts.Append(ctx, a); err != nil {
		return fmt.Errorf("guardar intento: %w", err)
	}
	return nil
}

// GetAttemptsByRefNo intentos de una referencia del vendedor, más recientes primero (mismo
// desempate que DeriveStatus).
func (s *Service) GetAttemptsByRefNo(ctx context.Context, refNo, sellerNTNCNIC string) ([]*entity.AttemptEntry, error) {
	attempts, err := s.attempts.ListByRefNo(ctx, refNo, sellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	domiris.SortLatestFirst(attempts)
	return attempts, nil
}

// GetAllAttempts intentos del vendedor, más recientes primero.
func (s *Service) GetAllAttempts(ctx context.Context, sellerNTNCNIC string) ([]*entity.AttemptEntry, error) {
	return s.attempts.List(ctx, sellerNTNCNIC)
}

// IsRefNoUsed indica si la referencia ya tiene intentos y, en ese caso, su estado derivado.
func (s *Service) IsRefNoUsed(ctx context.Context, refNo, sellerNTNCNIC string) (RefNoUsage, error) {
	attempts, err := s.attempts.ListByRefNo(ctx, refNo, sellerNTNCNIC)
	if err != nil {
		return RefNoUsage{}, err
	}
	if len(attempts) == 0 {
		return RefNoUsage{}, nil
	}
	return RefNoUsage{Used: true, Status: domiris.DeriveStatus(attempts)}, nil
}

// CheckRefNo motivo por el que la referencia no puede usarse en un documento nuevo, o "" si
// puede. Bloquean SUCCESS (ya aceptada) y UNKNOWN (puede haber llegado); FAILED se puede reusar.
func (s *Service) CheckRefNo(ctx context.Context, refNo, sellerNTNCNIC string) (string, error) {
	usage, err := s.IsRefNoUsed(ctx, refNo, sellerNTNCNIC)
	if err != nil || !usage.Used {
		return "", err
	}
	switch usage.Status {
	case entity.DocumentStatusSuccess:
		return fmt.Sprintf("Invoice reference %q has already been successfully submitted. Please use a different reference number.", refNo), nil
	case entity.DocumentStatusUnknown:
		return fmt.Sprintf("Invoice reference %q has an unknown submission status. Please use a different reference number or wait for reconciliation.", refNo), nil
	}
	return "", nil
}

// IsReferencedInvoiceValid comprueba que la factura que una nota débito/crédito referencia exista,
// haya sido aceptada por IRIS y sea una factura de venta.
func (s *Service) IsReferencedInvoiceValid(ctx context.Context, refNo, sellerNTNCNIC string) (ReferenceCheck, error) {
	attempts, err := s.attempts.ListByRefNo(ctx, refNo, sellerNTNCNIC)
	if err != nil {
		return ReferenceCheck{}, err
	}
	if len(attempts) == 0 {
		return ReferenceCheck{Reason: fmt.Sprintf("Referenced invoice %q not found.", refNo)}, nil
	}
	if status := domiris.DeriveStatus(attempts); status != entity.DocumentStatusSuccess {
		return ReferenceCheck{
			Reason: fmt.Sprintf("Referenced invoice %q is not in a successful state (current: %s).", refNo, status),
		}, nil
	}

	docType := domiris.LatestAttempt(attempts).DocumentType
	if docType == "" {
		doc, err := s.docs.GetByRefNo(ctx, refNo, sellerNTNCNIC)
		if err != nil {
			return ReferenceCheck{}, err
		}
		if doc != nil {
			docType = doc.DocumentType
		}
	}
	if docType != "" && docType != iris.DocumentTypeSaleInvoice {
		return ReferenceCheck{Reason: fmt.Sprintf("Referenced document %q is not a Sale Invoice.", refNo)}, nil
	}
	return ReferenceCheck{Valid: true}, nil
}

// GetLastSuccessfulRefNo referencia del último intento SUCCESS del vendedor, o "".
func (s *Service) GetLastSuccessfulRefNo(ctx context.Context, sellerNTNCNIC string) (string, error) {
	a, err := s.attempts.LatestSuccessful(ctx, sellerNTNCNIC)
	if err != nil || a == nil {
		return "", err
	}
	return a.InvoiceRefNo, nil
}

// SuggestNextRefNo próxima referencia a partir de la última aceptada. ok=false si no hay
// referencia previa o no termina en dígitos.
func (s *Service) SuggestNextRefNo(ctx context.Context, sellerNTNCNIC string) (last, next string, ok bool, err error) {
	last, err = s.GetLastSuccessfulRefNo(ctx, sellerNTNCNIC)
	if err != nil {
		return "", "", false, err
	}
	next, ok = iris.SuggestNextRefNo(last)
	return last, next, ok, nil
}

// DocumentView documento con su estado derivado.
type DocumentView struct {
	Document    *entity.InvoiceDocument
	Status      string
	LastAttempt *entity.AttemptEntry
	Attempts    []*entity.AttemptEntry
}

// ListDocuments documentos del vendedor con estado y último intento.
func (s *Service) ListDocuments(ctx context.Context, sellerNTNCNIC string) ([]DocumentView, error) {
	docs, err := s.docs.List(ctx, sellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		attempts, err := s.attempts.ListByDocument(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, DocumentView{
			Document:    d,
			Status:      domiris.DeriveStatus(attempts),
			LastAttempt: domiris.LatestAttempt(attempts),
		})
	}
	return out, nil
}

// GetDocument documento con todos sus intentos (más recientes primero). (nil, nil) si no existe.
func (s *Service) GetDocument(ctx context.Context, id string) (*DocumentView, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	attempts, err := s.attempts.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &DocumentView{
		Document:    doc,
		Status:      domiris.DeriveStatus(attempts),
		LastAttempt: domiris.LatestAttempt(attempts),
	}
	domiris.SortLatestFirst(attempts)
	view.Attempts = attempts
	return view, nil
}

// FilterAttempts intentos del vendedor que contienen query (sin distinguir mayúsculas) en la
// referencia, el diagnostic id o el NTN, y cuyo resultado coincide con outcome si no es vacío.
func (s *Service) FilterAttempts(ctx context.Context, sellerNTNCNIC, query, outcome string) ([]*entity.AttemptEntry, error) {
	all, err := s.attempts.List(ctx, sellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*entity.AttemptEntry, 0, len(all))
	for _, a := range all {
		if outcome != "" && a.Outcome != outcome {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.InvoiceRefNo), q) &&
			!strings.Contains(strings.ToLower(a.DiagnosticID), q) &&
			!strings.Contains(strings.ToLower(a.SellerNTNCNIC), q) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Summary datos del dashboard de un vendedor.
type Summary struct {
	TotalDocuments      int
	ByStatus            map[string]int
	TotalAttempts       int
	LastSuccessfulRefNo string
	SuggestedRefNo      string
	RecentAttempts      []*entity.AttemptEntry
}

// recentAttemptsLimit intentos que muestra el dashboard.
const recentAttemptsLimit = 10

// Summary resumen del dashboard para el vendedor.
func (s *Service) Summary(ctx context.Context, sellerNTNCNIC string) (*Summary, error) {
	views, err := s.ListDocuments(ctx, sellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attempts.List(ctx, sellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	last, next, _, err := s.SuggestNextRefNo(ctx, sellerNTNCNIC)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		TotalDocuments:      len(views),
		ByStatus:            make(map[string]int),
		TotalAttempts:       len(attempts),
		LastSuccessfulRefNo: last,
		SuggestedRefNo:      next,
	}
	for _, v := range views {
		sum.ByStatus[v.Status]++
	}
	if len(attempts) > recentAttemptsLimit {
		attempts = attempts[:recentAttemptsLimit]
	}
	sum.RecentAttempts = attempts
	return sum, nil
}
