package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gopower/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCalculationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create calculations table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createCalculationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS calculations (
			id UUID PRIMARY KEY,
			family TEXT NOT NULL,
			unknown_field TEXT NOT NULL,
			request JSONB NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			achieved_power DOUBLE PRECISION NOT NULL,
			effect_label TEXT NOT NULL DEFAULT '',
			warnings TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_calculations_family_created
		ON calculations (family, created_at DESC)`)
	return err
}
