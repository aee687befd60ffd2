package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"handi-menu/internal/database"
	"handi-menu/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and applies the application schema.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestFilterClause(t *testing.T) {
	day := time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    model.OrderFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "Empty filter",
			filter:    model.OrderFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "Reference only",
			filter:    model.OrderFilter{Ref: "ab12"},
			wantWhere: "WHERE id ILIKE '%' || $1::text || '%'",
			wantArgs:  []any{"ab12"},
		},
		{
			name:   "Name and table",
			filter: model.OrderFilter{Name: "ram", Table: "4"},
			wantWhere: "WHERE customer_name ILIKE '%' || $1::text || '%'" +
				" AND table_number LIKE '%' || $2::text || '%'",
			wantArgs: []any{"ram", "4"},
		},
		{
			name:   "Contact and date",
			filter: model.OrderFilter{Contact: "98", Date: &day},
			wantWhere: "WHERE contact_number LIKE '%' || $1::text || '%'" +
				" AND created_at >= $2 AND created_at < $3",
			wantArgs: []any{
				"98",
				time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := filterClause(tt.filter)

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEncodeItems_NilBecomesEmptyArray(t *testing.T) {
	data, err := encodeItems(nil)

	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
