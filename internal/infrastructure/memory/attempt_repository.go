package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/domain/iris"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
)

var _ repository.AttemptRepository = (*AttemptRepo)(nil)

// AttemptRepo ledger en memoria: un slice que solo crece.
type AttemptRepo struct {
	s *Store
}

// NewAttemptRepository construye el adaptador sobre el store compartido.
func NewAttemptRepository(s *Store) *AttemptRepo {
	return &AttemptRepo{s: s}
}

// Append inserta el intento y asigna ID (si falta) y Seq.
func (r *AttemptRepo) Append(_ context.Context, attempt *entity.AttemptEntry) error {
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.attemptID[attempt.ID]; ok {
		return fmt.Errorf("intento %s: %w", attempt.ID, domain.ErrDuplicate)
	}
	attempt.Seq = r.s.nextSeq()
	r.s.attemptID[attempt.ID] = struct{}{}
	r.s.attempts = append(r.s.attempts, cloneAttempt(attempt))
	return nil
}

// ListByDocument intentos del documento en orden de inserción.
func (r *AttemptRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.AttemptEntry, error) {
	return r.filter(func(a *entity.AttemptEntry) bool { return a.DocumentID == documentID }), nil
}

// ListByRefNo intentos de la referencia para el vendedor, en orden de inserción.
func (r *AttemptRepo) ListByRefNo(_ context.Context, refNo, sellerNTNCNIC string) ([]*entity.AttemptEntry, error) {
	return r.filter(func(a *entity.AttemptEntry) bool {
		return a.InvoiceRefNo == refNo && a.SellerNTNCNIC == sellerNTNCNIC
	}), nil
}

// List intentos del vendedor, más recientes primero.
func (r *AttemptRepo) List(_ context.Context, sellerNTNCNIC string) ([]*entity.AttemptEntry, error) {
	out := r.filter(func(a *entity.AttemptEntry) bool {
		return sellerNTNCNIC == "" || a.SellerNTNCNIC == sellerNTNCNIC
	})
	iris.SortLatestFirst(out)
	return out, nil
}

// LatestSuccessful último intento SUCCESS del vendedor, o (nil, nil).
func (r *AttemptRepo) LatestSuccessful(_ context.Context, sellerNTNCNIC string) (*entity.AttemptEntry, error) {
	ok := r.filter(func(a *entity.AttemptEntry) bool {
		return a.SellerNTNCNIC == sellerNTNCNIC && a.Outcome == entity.OutcomeSuccess
	})
	return iris.LatestAttempt(ok), nil
}

func (r *AttemptRepo) filter(keep func(*entity.AttemptEntry) bool) []*entity.AttemptEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.AttemptEntry, 0)
	for _, a := range r.s.attempts {
		if keep(a) {
			out = append(out, cloneAttempt(a))
		}
	}
	return out
}
