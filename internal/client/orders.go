package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"handi-menu/internal/model"
)

// filterQuery encodes filter as a query string, including the leading "?".
func filterQuery(filter model.OrderFilter) string {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("ref", filter.Ref)
	set("name", filter.Name)
	set("contact", filter.Contact)
	set("table", filter.Table)
	if filter.Date != nil {
		q.Set("date", filter.Date.Format(time.DateOnly))
	}

	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Orders returns active orders newest first, or an empty list if they cannot
// be fetched.
func (c *Client) Orders(ctx context.Context, filter model.OrderFilter) []model.Order {
	var orders []model.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/orders"+filterQuery(filter), nil, &orders); err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch orders")
		return []model.Order{}
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders
}

// Order looks up one order among active and archived orders.
func (c *Client) Order(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PlaceOrder submits an order, typically the result of a cart checkout.
func (c *Client) PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	var created model.Order
	if _, err := c.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus moves order id to status.
func (c *Client) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var updated model.Order
	body := model.StatusUpdateRequest{Status: string(status)}
	if _, err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOrder removes an active order. Deleting a missing order succeeds.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/orders/"+url.PathEscape(id), nil, nil)
	return err
}

// ArchiveOnServer asks the API to archive order id in one transaction.
func (c *Client) ArchiveOnServer(ctx context.Context, id string) (*model.HistoryRecord, error) {
	var record model.HistoryRecord
	if _, err := c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/archive", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Archive moves a terminal order into history with two idempotent calls:
// append to history, then delete from orders. Each step is retried on
// transient failures, so a crash between them is repaired by calling Archive
// again.
func (c *Client) Archive(ctx context.Context, order model.Order) (*model.HistoryRecord, error) {
	if !order.Status.IsTerminal() {
		return nil, model.ErrNotArchivable
	}

	record := model.NewHistoryRecord(order, time.Now().UTC())

	var stored *model.HistoryRecord
	err := c.retry(ctx, "append-history", func() error {
		rec, _, err := c.AppendHistory(ctx, record)
		if err != nil {
			return err
		}
		stored = rec
		return nil
	})
	if err != nil {
		c.logger.Error().Err(err).Str("order_id", order.ID).Msg("archival append failed, order left active")
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	err = c.retry(ctx, "delete-order", func() error {
		return c.DeleteOrder(ctx, order.ID)
	})
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Msg("archival delete failed, order present in both orders and history")
		return stored, fmt.Errorf("failed to delete archived order: %w", err)
	}

	c.logger.Info().Str("order_id", order.ID).Msg("order archived")
	return stored, nil
}
