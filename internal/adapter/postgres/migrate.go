package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/migrations"
)

// MigrationStatus is the applied state of one migration.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

func newMigrationProvider(db *sql.DB, fsys fs.FS) (*goose.Provider, error) {
	// goose.NewProvider handles $$-delimited PL/pgSQL bodies, the legacy
	// goose.Up does not.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, nil
}

// MigrateDB applies every pending embedded migration through a database/sql
// handle and returns the versions applied.
func MigrateDB(ctx context.Context, db *sql.DB) ([]int64, error) {
	provider, err := newMigrationProvider(db, migrations.FS)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose up: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// Migrate applies every pending embedded migration using the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return MigrateDB(ctx, db)
}

// Migrations reports the state of every embedded migration.
func Migrations(ctx context.Context, pool *pgxpool.Pool) ([]MigrationStatus, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := newMigrationProvider(db, migrations.FS)
	if err != nil {
		return nil, err
	}

	states, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(states))
	for _, s := range states {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
