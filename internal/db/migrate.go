package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"telegram_initdata/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations lists the .sql files in fsys in the order Apply runs them.
func Migrations(fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Apply executes every migration in fsys. Files must be idempotent; there
// is no version table.
func Apply(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	names, err := Migrations(fsys)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read file %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		logger.Info("migration applied", "file", name)
	}
	return nil
}
