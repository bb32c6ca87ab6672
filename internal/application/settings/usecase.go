// Package settings administra la identidad fiscal del vendedor de la instalación.
package settings

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
)

// UseCase lectura y guardado de la identidad del vendedor.
type UseCase struct {
	repo repository.SellerIdentityRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso con el puerto de persistencia.
func NewUseCase(repo repository.SellerIdentityRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Get devuelve la identidad configurada o domain.ErrSellerNotConfigured.
func (uc *UseCase) Get(ctx context.Context) (*dto.SellerIdentityResponse, error) {
	seller, err := uc.Identity(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(seller), nil
}

// Identity entidad de la identidad configurada o domain.ErrSellerNotConfigured.
func (uc *UseCase) Identity(ctx context.Context) (*entity.SellerIdentity, error) {
	seller, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrSellerNotConfigured
	}
	return seller, nil
}

// Save valida y reemplaza la identidad.
func (uc *UseCase) Save(ctx context.Context, in dto.SellerIdentityRequest) (*dto.SellerIdentityResponse, error) {
	in.NTNCNIC = strings.TrimSpace(in.NTNCNIC)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	seller := &entity.SellerIdentity{
		NTNCNIC:      in.NTNCNIC,
		BusinessName: strings.TrimSpace(in.BusinessName),
		Province:     strings.TrimSpace(in.Province),
		Address:      strings.TrimSpace(in.Address),
		UpdatedAt:    uc.now().UTC(),
	}
	if err := uc.repo.Save(ctx, seller); err != nil {
		return nil, err
	}
	return toResponse(seller), nil
}

func toResponse(s *entity.SellerIdentity) *dto.SellerIdentityResponse {
	return &dto.SellerIdentityResponse{
		NTNCNIC:      s.NTNCNIC,
		BusinessName: s.BusinessName,
		Province:     s.Province,
		Address:      s.Address,
		UpdatedAt:    s.UpdatedAt,
	}
}
