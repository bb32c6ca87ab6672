package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Iris-api/internal/domain/repository"
	"github.com/jhoicas/Iris-api/internal/infrastructure/memory"
	"github.com/jhoicas/Iris-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Iris-api/pkg/config"
)

// storage repositorios del backend elegido en STORAGE_DRIVER.
type storage struct {
	Documents repository.DocumentRepository
	Attempts  repository.AttemptRepository
	Sellers   repository.SellerIdentityRepository
	close     func()
}

// Close libera el pool de conexiones, si lo hay.
func (s *storage) Close() {
	if s.close != nil {
		s.close()
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		txRunner := postgres.NewTxRunner(pool)
		if err := postgres.Migrate(ctx, txRunner); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			Documents: postgres.NewDocumentRepository(pool, txRunner),
			Attempts:  postgres.NewAttemptRepository(pool),
			Sellers:   postgres.NewSellerIdentityRepository(pool),
			close:     pool.Close,
		}, nil
	default:
		s := memory.NewStore()
		return &storage{
			Documents: memory.NewDocumentRepository(s),
			Attempts:  memory.NewAttemptRepository(s),
			Sellers:   memory.NewSellerIdentityRepository(s),
		}, nil
	}
}
