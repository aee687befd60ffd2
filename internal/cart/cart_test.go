package cart

import (
	"math/rand"
	"testing"
	"time"

	"handi-menu/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(id, name string, price float64) model.MenuItem {
	return model.MenuItem{
		ID:       id,
		Name:     name,
		Category: model.CategoryBiryani,
		Price:    price,
		Rating:   4.5,
	}
}

func TestCart_AddItem(t *testing.T) {
	c := New()
	biryani := menuItem("m1", "Chicken Biryani", 350)
	momo := menuItem("m2", "Chicken Momo", 180)

	c.AddItem(biryani)
	c.AddItem(momo)
	c.AddItem(biryani)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "m1", lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "m2", lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 880.0, c.Total())
}

func TestCart_AdjustQuantity(t *testing.T) {
	tests := []struct {
		name      string
		delta     int
		wantLines int
		wantQty   int
	}{
		{name: "increment", delta: 2, wantLines: 1, wantQty: 3},
		{name: "decrement", delta: -1, wantLines: 0},
		{name: "below zero removes", delta: -5, wantLines: 0},
		{name: "zero delta", delta: 0, wantLines: 1, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddItem(menuItem("m1", "Chicken Biryani", 350))

			c.AdjustQuantity("m1", tt.delta)

			lines := c.Lines()
			require.Len(t, lines, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, lines[0].Quantity)
			}
		})
	}
}

func TestCart_AdjustQuantity_UnknownID(t *testing.T) {
	c := New()
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))

	c.AdjustQuantity("missing", -1)

	assert.Equal(t, 1, c.Count())
}

func TestCart_TotalMatchesLines(t *testing.T) {
	items := []model.MenuItem{
		menuItem("m1", "Chicken Biryani", 350),
		menuItem("m2", "Chicken Momo", 180),
		menuItem("m3", "Veg Pizza", 425.5),
	}
	rng := rand.New(rand.NewSource(42))
	c := New()

	for i := 0; i < 500; i++ {
		item := items[rng.Intn(len(items))]
		if rng.Intn(2) == 0 {
			c.AddItem(item)
		} else {
			c.AdjustQuantity(item.ID, rng.Intn(5)-3)
		}

		lines := c.Lines()
		for _, line := range lines {
			require.Positive(t, line.Quantity)
		}
		assert.InDelta(t, model.SumLines(lines), c.Total(), 1e-9)
	}
}

func TestCart_LinesIsCopy(t *testing.T) {
	c := New()
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))

	lines := c.Lines()
	lines[0].Quantity = 99
	lines[0].Price = 1

	assert.Equal(t, 350.0, c.Total())
}

func TestCart_CheckoutEmpty(t *testing.T) {
	c := New()

	order, ok := c.Checkout(model.CustomerInfo{TableNumber: "5"})

	assert.False(t, ok)
	assert.Nil(t, order)
	assert.True(t, c.IsEmpty())
}

func TestCart_Checkout(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return fixed }
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))
	before := c.Total()

	order, ok := c.Checkout(model.CustomerInfo{
		TableNumber:   "5",
		CustomerName:  "Sita",
		ContactNumber: "9800000000",
		ExtraToppings: "extra raita",
	})

	require.True(t, ok)
	require.NotNil(t, order)
	assert.Equal(t, 700.0, order.Total)
	assert.Equal(t, before, order.Total)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, "5", order.TableNumber)
	assert.Equal(t, "Sita", order.CustomerName)
	assert.Equal(t, "extra raita", order.ExtraToppings)
	assert.Equal(t, fixed, order.CreatedAt)
	assert.Len(t, order.ID, 8)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Total())
	assert.NoError(t, order.Validate())
}

func TestCart_CheckoutSnapshotIsFrozen(t *testing.T) {
	c := New()
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))

	order, ok := c.Checkout(model.CustomerInfo{TableNumber: "1"})
	require.True(t, ok)

	c.AddItem(menuItem("m1", "Chicken Biryani", 999))

	assert.Equal(t, 350.0, order.Items[0].Price)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestCart_CheckoutUniqueReferences(t *testing.T) {
	seen := map[string]bool{}
	c := New()

	for i := 0; i < 50; i++ {
		c.AddItem(menuItem("m1", "Chicken Biryani", 350))
		order, ok := c.Checkout(model.CustomerInfo{TableNumber: "1"})
		require.True(t, ok)
		assert.False(t, seen[order.ID], "duplicate reference %s", order.ID)
		seen[order.ID] = true
	}
}

func TestCart_Restore(t *testing.T) {
	c := New()
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))
	c.AddItem(menuItem("m1", "Chicken Biryani", 350))
	lines := c.Lines()

	_, ok := c.Checkout(model.CustomerInfo{TableNumber: "5"})
	require.True(t, ok)
	require.True(t, c.IsEmpty())

	c.Restore(lines)
	lines[0].Quantity = 9

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 700.0, c.Total())
}
