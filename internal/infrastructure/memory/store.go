// Package memory implementa los puertos de persistencia en memoria del proceso. Es el backend por
// defecto en desarrollo y el fixture de los tests; los datos se pierden al reiniciar.
package memory

import (
	"sync"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// Store estado compartido por los tres repositorios. Los repos devuelven copias: nada de lo que
// reciba un llamador puede alterar lo guardado.
type Store struct {
	mu        sync.RWMutex
	documents map[string]*entity.InvoiceDocument
	docSeq    map[string]int64
	attempts  []*entity.AttemptEntry
	attemptID map[string]struct{}
	seq       int64
	seller    *entity.SellerIdentity
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		documents: make(map[string]*entity.InvoiceDocument),
		docSeq:    make(map[string]int64),
		attemptID: make(map[string]struct{}),
	}
}

// nextSeq debe llamarse con el lock de escritura tomado.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func cloneDocument(d *entity.InvoiceDocument) *entity.InvoiceDocument {
	cp := *d
	cp.Items = append([]entity.InvoiceItem(nil), d.Items...)
	return &cp
}

func cloneAttempt(a *entity.AttemptEntry) *entity.AttemptEntry {
	cp := *a
	if a.HTTPStatus != nil {
		v := *a.HTTPStatus
		cp.HTTPStatus = &v
	}
	if a.DurationMs != nil {
		v := *a.DurationMs
		cp.DurationMs = &v
	}
	return &cp
}
