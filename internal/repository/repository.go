package repository

import (
	"context"

	"handi-menu/internal/model"

	"github.com/jackc/pgx/v5"
)

// MenuRepository defines the interface for catalogue data access operations.
type MenuRepository interface {
	// GetAll retrieves every menu item ordered by id.
	GetAll(ctx context.Context) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item. Returns nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)

	// Create inserts a new menu item.
	Create(ctx context.Context, item *model.MenuItem) error

	// Update overwrites an existing menu item.
	// Returns model.ErrMenuItemNotFound if the id does not exist.
	Update(ctx context.Context, item *model.MenuItem) error

	// Delete removes a menu item. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Upsert inserts or replaces menu items in one batch and returns the count written.
	Upsert(ctx context.Context, items []model.MenuItem) (int, error)
}

// OrderRepository defines the interface for active order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order.
	// Returns model.ErrDuplicateOrder if the id is already used by an active or archived order.
	Create(ctx context.Context, order *model.Order) error

	// List retrieves orders matching filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetByID retrieves an order. Returns nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// GetForUpdate retrieves and row-locks an order within tx. Returns nil when it does not exist.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*model.Order, error)

	// UpdateStatus sets the status of an order. Returns nil when it does not exist.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)

	// Delete removes an order and reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteTx removes an order within tx and reports whether a row was deleted.
	DeleteTx(ctx context.Context, tx pgx.Tx, id string) (bool, error)
}

// HistoryRepository defines the interface for archived order data access operations.
type HistoryRepository interface {
	// List retrieves archived orders matching filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.HistoryRecord, error)

	// GetByID retrieves an archived order. Returns nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.HistoryRecord, error)

	// Append inserts a record and reports whether it was new.
	// An id that is already archived is left untouched.
	Append(ctx context.Context, record *model.HistoryRecord) (bool, error)

	// AppendTx is Append within tx.
	AppendTx(ctx context.Context, tx pgx.Tx, record *model.HistoryRecord) (bool, error)
}
