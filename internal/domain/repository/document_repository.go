package repository

import (
	"context"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para documentos fiscales y sus líneas.
type DocumentRepository interface {
	// Create persiste cabecera e ítems de forma atómica.
	Create(ctx context.Context, doc *entity.InvoiceDocument) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.InvoiceDocument, error)
	// GetByRefNo devuelve el documento más reciente con esa referencia para el vendedor.
	GetByRefNo(ctx context.Context, refNo, sellerNTNCNIC string) (*entity.InvoiceDocument, error)
	// List devuelve los documentos del vendedor, más recientes primero.
	List(ctx context.Context, sellerNTNCNIC string) ([]*entity.InvoiceDocument, error)
	// Delete elimina un documento sin intentos de envío. domain.ErrNotFound si no existe y
	// domain.ErrNotDraft si ya tiene intentos.
	Delete(ctx context.Context, id string) error
}
