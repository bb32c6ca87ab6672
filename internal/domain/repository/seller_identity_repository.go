package repository

import (
	"context"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// SellerIdentityRepository guarda la identidad única del vendedor de la instalación.
type SellerIdentityRepository interface {
	// Save reemplaza la identidad existente.
	Save(ctx context.Context, seller *entity.SellerIdentity) error
	// Get devuelve (nil, nil) si aún no se configuró.
	Get(ctx context.Context) (*entity.SellerIdentity, error)
}
