package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación en memoria de DocumentRepository.
type DocumentRepo struct {
	s *Store
}

// NewDocumentRepository construye el adaptador sobre el store compartido.
func NewDocumentRepository(s *Store) *DocumentRepo {
	return &DocumentRepo{s: s}
}

// Create guarda cabecera e ítems. Un ID repetido devuelve domain.ErrDuplicate.
func (r *DocumentRepo) Create(_ context.Context, doc *entity.InvoiceDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	for i := range doc.Items {
		if doc.Items[i].ID == "" {
			doc.Items[i].ID = uuid.New().String()
		}
		doc.Items[i].DocumentID = doc.ID
		doc.Items[i].LineNo = i + 1
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documents[doc.ID]; ok {
		return fmt.Errorf("documento %s: %w", doc.ID, domain.ErrDuplicate)
	}
	r.s.documents[doc.ID] = cloneDocument(doc)
	r.s.docSeq[doc.ID] = r.s.nextSeq()
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.InvoiceDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.documents[id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(d), nil
}

// GetByRefNo devuelve el último documento creado con esa referencia para el vendedor.
func (r *DocumentRepo) GetByRefNo(_ context.Context, refNo, sellerNTNCNIC string) (*entity.InvoiceDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *entity.InvoiceDocument
	var foundSeq int64
	for id, d := range r.s.documents {
		if d.InvoiceRefNo != refNo || d.SellerNTNCNIC != sellerNTNCNIC {
			continue
		}
		if seq := r.s.docSeq[id]; found == nil || seq > foundSeq {
			found, foundSeq = d, seq
		}
	}
	if found == nil {
		return nil, nil
	}
	return cloneDocument(found), nil
}

// List documentos del vendedor, más recientes primero. sellerNTNCNIC vacío lista todos.
func (r *DocumentRepo) List(_ context.Context, sellerNTNCNIC string) ([]*entity.InvoiceDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.InvoiceDocument, 0, len(r.s.documents))
	for _, d := range r.s.documents {
		if sellerNTNCNIC != "" && d.SellerNTNCNIC != sellerNTNCNIC {
			continue
		}
		out = append(out, cloneDocument(d))
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.docSeq[out[i].ID] > r.s.docSeq[out[j].ID]
	})
	return out, nil
}

// Delete elimina el documento si no tiene intentos en el ledger.
func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documents[id]; !ok {
		return fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
	}
	for _, a := range r.s.attempts {
		if a.DocumentID == id {
			return fmt.Errorf("documento %s: %w", id, domain.ErrNotDraft)
		}
	}
	delete(r.s.documents, id)
	delete(r.s.docSeq, id)
	return nil
}
