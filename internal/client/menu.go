package client

import (
	"context"
	"net/http"
	"net/url"

	"handi-menu/internal/model"
)

// Menu returns the catalogue, or an empty list if it cannot be fetched.
func (c *Client) Menu(ctx context.Context) []model.MenuItem {
	var items []model.MenuItem
	if _, err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch menu")
		return []model.MenuItem{}
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items
}

// CreateMenuItem adds an item to the catalogue.
func (c *Client) CreateMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	var created model.MenuItem
	if _, err := c.do(ctx, http.MethodPost, "/api/menu", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMenuItem applies a partial update to item id.
func (c *Client) UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	var updated model.MenuItem
	if _, err := c.do(ctx, http.MethodPut, "/api/menu/"+url.PathEscape(id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMenuItem removes item id.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/menu/"+url.PathEscape(id), nil, nil)
	return err
}
