package memory

import (
	"context"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
)

var _ repository.SellerIdentityRepository = (*SellerIdentityRepo)(nil)

// SellerIdentityRepo identidad del vendedor en memoria.
type SellerIdentityRepo struct {
	s *Store
}

// NewSellerIdentityRepository construye el adaptador sobre el store compartido.
func NewSellerIdentityRepository(s *Store) *SellerIdentityRepo {
	return &SellerIdentityRepo{s: s}
}

// Save reemplaza la identidad.
func (r *SellerIdentityRepo) Save(_ context.Context, seller *entity.SellerIdentity) error {
	cp := *seller
	r.s.mu.Lock()
	r.s.seller = &cp
	r.s.mu.Unlock()
	return nil
}

// Get devuelve (nil, nil) si no se configuró.
func (r *SellerIdentityRepo) Get(_ context.Context) (*entity.SellerIdentity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.seller == nil {
		return nil, nil
	}
	cp := *r.s.seller
	return &cp, nil
}
