package service

import (
	"context"

	"handi-menu/internal/model"
)

// MenuService defines operations for catalogue management.
type MenuService interface {
	// List retrieves every menu item.
	List(ctx context.Context) ([]model.MenuItem, error)

	// Create validates and stores a new menu item, assigning an id when none is given.
	Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error)

	// Update applies a partial update to an existing menu item.
	Update(ctx context.Context, id string, update *model.MenuItemUpdate) (*model.MenuItem, error)

	// Delete removes a menu item. Missing ids are ignored.
	Delete(ctx context.Context, id string) error
}

// OrderService defines operations for the active order lifecycle.
type OrderService interface {
	// List retrieves active orders matching filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetByID looks an order up among active orders, then history.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// Create places a new order.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)

	// UpdateStatus moves an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, status string) (*model.Order, error)

	// Delete removes an active order. Missing ids are ignored.
	Delete(ctx context.Context, id string) error

	// Archive moves a terminal order into history atomically.
	Archive(ctx context.Context, id string) (*model.HistoryRecord, error)
}

// HistoryService defines operations for archived orders.
type HistoryService interface {
	// List retrieves archived orders matching filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.HistoryRecord, error)

	// Append stores a terminal order in history. When the id is already
	// archived the existing record is returned and created is false.
	Append(ctx context.Context, record *model.HistoryRecord) (stored *model.HistoryRecord, created bool, err error)
}

// StatsService derives the dashboard summary.
type StatsService interface {
	// Get computes stats over active and archived orders.
	Get(ctx context.Context) (*model.Stats, error)
}
