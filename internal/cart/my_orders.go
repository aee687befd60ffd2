package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"handi-menu/internal/model"
)

// MyOrdersKey is the key under which order ids are stored.
const MyOrdersKey = "myOrders"

// MyOrders is a local list of order ids placed from this device. It is a
// lookup hint only and grants no access to the orders it names.
type MyOrders struct {
	path string
	ids  []string
}

// OpenMyOrders loads the list stored at path. A missing file is an empty list.
func OpenMyOrders(path string) (*MyOrders, error) {
	m := &MyOrders{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read my orders: %w", err)
	}

	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode my orders: %w", err)
	}
	m.ids = doc[MyOrdersKey]

	return m, nil
}

// Remember appends id and persists the list. Known ids are not repeated.
func (m *MyOrders) Remember(id string) error {
	if id == "" || slices.Contains(m.ids, id) {
		return nil
	}
	m.ids = append(m.ids, id)
	return m.save()
}

// IDs returns the remembered ids in insertion order.
func (m *MyOrders) IDs() []string {
	return slices.Clone(m.ids)
}

// Filter keeps the orders whose ids are remembered.
func (m *MyOrders) Filter(orders []model.Order) []model.Order {
	out := []model.Order{}
	for _, o := range orders {
		if slices.Contains(m.ids, o.ID) {
			out = append(out, o)
		}
	}
	return out
}

func (m *MyOrders) save() error {
	ids := m.ids
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(map[string][]string{MyOrdersKey: ids})
	if err != nil {
		return fmt.Errorf("failed to encode my orders: %w", err)
	}

	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create my orders directory: %w", err)
		}
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write my orders: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace my orders: %w", err)
	}

	return nil
}
