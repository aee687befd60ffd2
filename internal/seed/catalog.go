package seed

import "handi-menu/internal/model"

// Catalog is a deduplicated set of menu items keyed by id. A later item with
// the same id replaces the earlier one but keeps its position.
type Catalog struct {
	index map[string]int
	items []model.MenuItem
}

// NewCatalog creates an empty catalog.
func NewCatalog(capacity int) *Catalog {
	return &Catalog{
		index: make(map[string]int, capacity),
		items: make([]model.MenuItem, 0, capacity),
	}
}

// Add inserts or replaces item and reports whether it was new.
func (c *Catalog) Add(item model.MenuItem) bool {
	if i, ok := c.index[item.ID]; ok {
		c.items[i] = item
		return false
	}
	c.index[item.ID] = len(c.items)
	c.items = append(c.items, item)
	return true
}

// Contains checks if an item id exists in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Size returns the number of distinct items.
func (c *Catalog) Size() int {
	return len(c.items)
}

// Items returns the items in first-seen order.
func (c *Catalog) Items() []model.MenuItem {
	out := make([]model.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}
