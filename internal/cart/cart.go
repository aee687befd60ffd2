// Package cart accumulates menu selections for one customer session and
// turns them into an order at checkout.
package cart

import (
	"time"

	"handi-menu/internal/model"
)

// Cart holds the lines of a single session. It is not safe for concurrent use.
type Cart struct {
	lines []model.CartLine
	now   func() time.Time
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{now: func() time.Time { return time.Now().UTC() }}
}

// AddItem increments the line for item, or appends it with quantity 1.
func (c *Cart) AddItem(item model.MenuItem) {
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, model.CartLine{MenuItem: item, Quantity: 1})
}

// AdjustQuantity changes the quantity of itemID by delta. Lines that reach
// zero are removed. Unknown ids are ignored.
func (c *Cart) AdjustQuantity(itemID string, delta int) {
	out := c.lines[:0]
	for _, line := range c.lines {
		if line.ID == itemID {
			line.Quantity = max(0, line.Quantity+delta)
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	c.lines = out
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	return model.SumLines(c.lines)
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []model.CartLine {
	return model.CloneLines(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Restore puts lines back into the cart, replacing its contents. It undoes a
// checkout whose order could not be placed.
func (c *Cart) Restore(lines []model.CartLine) {
	c.lines = model.CloneLines(lines)
}

// Checkout freezes the cart into a pending order and clears it. An empty cart
// yields no order and is left untouched.
func (c *Cart) Checkout(info model.CustomerInfo) (*model.Order, bool) {
	if c.IsEmpty() {
		return nil, false
	}

	order := &model.Order{
		ID:            model.NewReference(),
		Items:         model.CloneLines(c.lines),
		Status:        model.StatusPending,
		TableNumber:   info.TableNumber,
		CustomerName:  info.CustomerName,
		ContactNumber: info.ContactNumber,
		ExtraToppings: info.ExtraToppings,
		CreatedAt:     c.now(),
	}
	order.RecomputeTotal()

	c.lines = nil
	return order, true
}
