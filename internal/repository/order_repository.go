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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order unless its id is already active or archived.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := encodeItems(order.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, items, total, status, table_number, customer_name, contact_number, extra_toppings, created_at, updated_at)
		SELECT $1::text, $2::jsonb, $3::numeric, $4::text, $5::text, $6::text, $7::text, $8::text, $9::timestamptz, $9::timestamptz
		WHERE NOT EXISTS (SELECT 1 FROM history WHERE id = $1::text)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID, string(items), order.Total, string(order.Status), order.TableNumber,
		order.CustomerName, order.ContactNumber, order.ExtraToppings, order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("order_id", order.ID).Msg("order id already in use")
		return model.ErrDuplicateOrder
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Msg("order created successfully")

	return nil
}

// List retrieves orders matching filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + orderColumns + ` FROM orders ` + where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return r.getByID(ctx, r.pool, id, false)
}

// GetForUpdate retrieves and locks an order within tx.
func (r *orderRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*model.Order, error) {
	return r.getByID(ctx, tx, id, true)
}

func (r *orderRepository) getByID(ctx context.Context, q querier, id string, lock bool) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	order, err := scanOrder(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// UpdateStatus sets the status of an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found for status update")
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("order_id", id).
			Str("status", string(status)).
			Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

// Delete removes an order.
func (r *orderRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, r.pool, id)
}

// DeleteTx removes an order within tx.
func (r *orderRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	return r.delete(ctx, tx, id)
}

func (r *orderRepository) delete(ctx context.Context, q querier, id string) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	deleted := tag.RowsAffected() > 0
	r.logger.Debug().Str("order_id", id).Bool("deleted", deleted).Msg("order delete executed")
	return deleted, nil
}
