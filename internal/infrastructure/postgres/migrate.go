package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate aplica en orden de nombre los scripts de migrations/ y registra cada versión en
// schema_migrations. Los scripts son idempotentes (IF NOT EXISTS); cada uno corre en su propia
// transacción.
func Migrate(ctx context.Context, tx *TxRunner) error {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")
		script, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		err = tx.Run(ctx, func(q Querier) error {
			// Sin argumentos pgx usa el protocolo simple: admite varias sentencias por script.
			if _, err := q.Exec(ctx, string(script)); err != nil {
				return err
			}
			_, err := q.Exec(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`, version)
			return err
		})
		if err != nil {
			return fmt.Errorf("migración %s: %w", version, err)
		}
	}
	return nil
}
