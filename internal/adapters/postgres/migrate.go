package postgres_adapter

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate применяет еще не примененные файлы из migrations/ по порядку имен.
// Каждый файл выполняется в своей транзакции.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresMigrator",
	})

	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		done, err := applyMigration(ctx, pool, file)
		if err != nil {
			logger.Error("Migration failed", err, port.Fields{"file": file})
			return err
		}
		if done {
			applied++
			logger.Info("Migration applied", port.Fields{"file": file})
		}
	}

	logger.Info("Schema is up to date", port.Fields{"applied": applied, "total": len(files)})
	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, file string) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, file).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", file, err)
	}
	if exists {
		return false, nil
	}

	sql, err := migrationsFS.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("failed to read migration %s: %w", file, err)
	}
	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return false, fmt.Errorf("failed to apply migration %s: %w", file, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, file); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", file, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit migration %s: %w", file, err)
	}
	return true, nil
}
