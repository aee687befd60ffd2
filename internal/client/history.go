package client

import (
	"context"
	"net/http"

	"handi-menu/internal/cart"
	"handi-menu/internal/model"
)

// History returns archived orders newest first, or an empty list if they
// cannot be fetched.
func (c *Client) History(ctx context.Context, filter model.OrderFilter) []model.HistoryRecord {
	var records []model.HistoryRecord
	if _, err := c.do(ctx, http.MethodGet, "/api/history"+filterQuery(filter), nil, &records); err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch history")
		return []model.HistoryRecord{}
	}
	if records == nil {
		records = []model.HistoryRecord{}
	}
	return records
}

// AppendHistory stores record and reports whether it was new. Appending an
// id that is already archived returns the stored record.
func (c *Client) AppendHistory(ctx context.Context, record *model.HistoryRecord) (*model.HistoryRecord, bool, error) {
	var stored model.HistoryRecord
	status, err := c.do(ctx, http.MethodPost, "/api/history", record, &stored)
	if err != nil {
		return nil, false, err
	}
	return &stored, status == http.StatusCreated, nil
}

// Stats returns the dashboard summary, or zero stats if it cannot be fetched.
func (c *Client) Stats(ctx context.Context) model.Stats {
	var stats model.Stats
	if _, err := c.do(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch stats")
		return model.ComputeStats(nil)
	}
	return stats
}

// LookupMyOrders returns the active and archived orders remembered in mine.
// A failed listing contributes no orders.
func (c *Client) LookupMyOrders(ctx context.Context, mine *cart.MyOrders) []model.Order {
	if len(mine.IDs()) == 0 {
		return []model.Order{}
	}

	all := c.Orders(ctx, model.OrderFilter{})
	for _, rec := range c.History(ctx, model.OrderFilter{}) {
		all = append(all, rec.Order)
	}

	return mine.Filter(all)
}
