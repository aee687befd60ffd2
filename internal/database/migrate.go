package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the catalogue, active order and history tables.
// Order lines are stored as JSONB snapshots so later menu edits never touch them.
const Schema = `
	CREATE TABLE IF NOT EXISTS menu (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		rating NUMERIC(2,1) NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		prep_time INTEGER CHECK (prep_time > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		items JSONB NOT NULL,
		total NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL,
		table_number TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		extra_toppings TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		items JSONB NOT NULL,
		total NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL,
		table_number TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		extra_toppings TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		archived_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at DESC);
`

// Migrate applies the schema. It is safe to run on every start-up.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")
	return nil
}
