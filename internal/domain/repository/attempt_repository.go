package repository

import (
	"context"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// AttemptRepository ledger de intentos de envío. Solo inserción: no hay Update ni Delete.
type AttemptRepository interface {
	// Append inserta el intento y le asigna Seq.
	Append(ctx context.Context, attempt *entity.AttemptEntry) error
	ListByDocument(ctx context.Context, documentID string) ([]*entity.AttemptEntry, error)
	ListByRefNo(ctx context.Context, refNo, sellerNTNCNIC string) ([]*entity.AttemptEntry, error)
	// List devuelve todos los intentos del vendedor ordenados por Timestamp descendente.
	// sellerNTNCNIC vacío devuelve los de todos los vendedores.
	List(ctx context.Context, sellerNTNCNIC string) ([]*entity.AttemptEntry, error)
	// LatestSuccessful devuelve el intento SUCCESS más reciente del vendedor, o (nil, nil).
	LatestSuccessful(ctx context.Context, sellerNTNCNIC string) (*entity.AttemptEntry, error)
}
