package client

import (
	"context"
	"fmt"

	"handi-menu/internal/cart"
	"handi-menu/internal/model"
)

// CheckoutResult is a placed order and the dishes suggested after it.
type CheckoutResult struct {
	Order           *model.Order
	Recommendations []string
}

// Checkout turns the cart into an order, places it and records the stored id
// in mine. Recommendations are fetched only after the order is persisted and
// never fail the checkout. If the order cannot be placed the cart is restored.
// An empty cart returns nil with no error.
func (c *Client) Checkout(ctx context.Context, ct *cart.Cart, info model.CustomerInfo, mine *cart.MyOrders) (*CheckoutResult, error) {
	lines := ct.Lines()
	order, ok := ct.Checkout(info)
	if !ok {
		return nil, nil
	}

	placed, err := c.PlaceOrder(ctx, order)
	if err != nil {
		ct.Restore(lines)
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if mine != nil {
		if err := mine.Remember(placed.ID); err != nil {
			c.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("failed to remember order id")
		}
	}

	names := make([]string, 0, len(placed.Items))
	for _, line := range placed.Items {
		names = append(names, line.Name)
	}

	c.logger.Info().
		Str("order_id", placed.ID).
		Float64("total", placed.Total).
		Msg("checkout completed")

	return &CheckoutResult{
		Order:           placed,
		Recommendations: c.Recommend(ctx, names),
	}, nil
}
