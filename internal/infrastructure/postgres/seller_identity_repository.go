package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
)

var _ repository.SellerIdentityRepository = (*SellerIdentityRepo)(nil)

// SellerIdentityRepo fila única (id = 1) de seller_identity.
type SellerIdentityRepo struct {
	q Querier
}

// NewSellerIdentityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerIdentityRepository(q Querier) *SellerIdentityRepo {
	return &SellerIdentityRepo{q: q}
}

// Save inserta o reemplaza la identidad.
func (r *SellerIdentityRepo) Save(ctx context.Context, s *entity.SellerIdentity) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO seller_identity (id, ntn_cnic, business_name, province, address, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET ntn_cnic = EXCLUDED.ntn_cnic,
		    business_name = EXCLUDED.business_name,
		    province = EXCLUDED.province,
		    address = EXCLUDED.address,
		    updated_at = EXCLUDED.updated_at`,
		s.NTNCNIC, s.BusinessName, s.Province, s.Address, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save seller identity: %w", err)
	}
	return nil
}

// Get devuelve (nil, nil) si no se configuró.
func (r *SellerIdentityRepo) Get(ctx context.Context) (*entity.SellerIdentity, error) {
	var s entity.SellerIdentity
	err := r.q.QueryRow(ctx, `
		SELECT ntn_cnic, business_name, province, address, updated_at
		FROM seller_identity WHERE id = 1`).Scan(&s.NTNCNIC, &s.BusinessName, &s.Province, &s.Address, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller identity: %w", err)
	}
	return &s, nil
}
