package repository

import (
	"context"
	"errors"
	"fmt"

	"handi-menu/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// historyRepository implements the HistoryRepository interface using PostgreSQL.
type historyRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewHistoryRepository creates a new PostgreSQL-backed history repository.
func NewHistoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) HistoryRepository {
	return &historyRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "history").Logger(),
	}
}

func scanHistoryRecord(row pgx.Row) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	order, err := scanOrder(row, &rec.ArchivedAt)
	if err != nil {
		return nil, err
	}
	rec.Order = *order
	return &rec, nil
}

// List retrieves archived orders matching filter, newest first.
func (r *historyRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.HistoryRecord, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + orderColumns + `, archived_at FROM history ` + where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query history")
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []model.HistoryRecord{}
	for rows.Next() {
		rec, err := scanHistoryRecord(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan history row")
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating history rows")
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return records, nil
}

// GetByID retrieves an archived order by its ID.
func (r *historyRepository) GetByID(ctx context.Context, id string) (*model.HistoryRecord, error) {
	query := `SELECT ` + orderColumns + `, archived_at FROM history WHERE id = $1`

	rec, err := scanHistoryRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("history record not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query history record")
		return nil, fmt.Errorf("failed to query history record: %w", err)
	}

	return rec, nil
}

// Append inserts a record unless its id is already archived.
func (r *historyRepository) Append(ctx context.Context, record *model.HistoryRecord) (bool, error) {
	return r.append(ctx, r.pool, record)
}

// AppendTx inserts a record within tx unless its id is already archived.
func (r *historyRepository) AppendTx(ctx context.Context, tx pgx.Tx, record *model.HistoryRecord) (bool, error) {
	return r.append(ctx, tx, record)
}

func (r *historyRepository) append(ctx context.Context, q querier, record *model.HistoryRecord) (bool, error) {
	items, err := encodeItems(record.Items)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO history (id, items, total, status, table_number, customer_name, contact_number, extra_toppings, created_at, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		record.ID, string(items), record.Total, string(record.Status), record.TableNumber,
		record.CustomerName, record.ContactNumber, record.ExtraToppings, record.CreatedAt, record.ArchivedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", record.ID).Msg("failed to append history record")
		return false, fmt.Errorf("failed to append history record: %w", err)
	}

	inserted := tag.RowsAffected() > 0
	if !inserted {
		r.logger.Info().Str("order_id", record.ID).Msg("history record already present")
	}

	return inserted, nil
}
