package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"handi-menu/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgxpool.Pool and pgx.Tx used by the repositories.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const orderColumns = `id, items, total, status, table_number, customer_name, contact_number, extra_toppings, created_at`

// scanOrder reads one orders/history row laid out as orderColumns followed by extra.
func scanOrder(row pgx.Row, extra ...any) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)

	dest := []any{
		&o.ID, &items, &o.Total, &o.Status, &o.TableNumber,
		&o.CustomerName, &o.ContactNumber, &o.ExtraToppings, &o.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items of order %s: %w", o.ID, err)
	}

	return &o, nil
}

// encodeItems serialises order lines for a JSONB column.
func encodeItems(items []model.CartLine) ([]byte, error) {
	if items == nil {
		items = []model.CartLine{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	return data, nil
}

// filterClause builds a WHERE clause for filter. Placeholders start at $1.
func filterClause(filter model.OrderFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Ref != "" {
		add("id ILIKE '%%' || $%d::text || '%%'", filter.Ref)
	}
	if filter.Name != "" {
		add("customer_name ILIKE '%%' || $%d::text || '%%'", filter.Name)
	}
	if filter.Contact != "" {
		add("contact_number LIKE '%%' || $%d::text || '%%'", filter.Contact)
	}
	if filter.Table != "" {
		add("table_number LIKE '%%' || $%d::text || '%%'", filter.Table)
	}
	if filter.Date != nil {
		start := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		add("created_at >= $%d", start)
		add("created_at < $%d", start.AddDate(0, 0, 1))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
