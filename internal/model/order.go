package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CartLine is a snapshot of a menu item together with the ordered quantity.
// It serialises flat: the menu item fields and quantity sit side by side.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Order represents a customer order.
type Order struct {
	ID            string      `json:"id" db:"id"`
	Items         []CartLine  `json:"items" db:"items"`
	Total         float64     `json:"total" db:"total"`
	Status        OrderStatus `json:"status" db:"status"`
	TableNumber   string      `json:"tableNumber" db:"table_number"`
	CustomerName  string      `json:"customerName" db:"customer_name"`
	ContactNumber string      `json:"contactNumber" db:"contact_number"`
	ExtraToppings string      `json:"extraToppings,omitempty" db:"extra_toppings"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}

// HistoryRecord is an archived order. It is never modified after insertion.
type HistoryRecord struct {
	Order
	ArchivedAt time.Time `json:"archivedAt" db:"archived_at"`
}

// NewHistoryRecord freezes a copy of order as archived at the given time.
func NewHistoryRecord(order Order, archivedAt time.Time) *HistoryRecord {
	order.Items = CloneLines(order.Items)
	return &HistoryRecord{Order: order, ArchivedAt: archivedAt}
}

// CustomerInfo is the contact detail captured at checkout.
type CustomerInfo struct {
	TableNumber   string `json:"tableNumber"`
	CustomerName  string `json:"customerName"`
	ContactNumber string `json:"contactNumber"`
	ExtraToppings string `json:"extraToppings,omitempty"`
}

// StatusUpdateRequest is the body of a status change.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderFilter narrows order and history listings. Empty fields match everything.
type OrderFilter struct {
	Ref     string
	Name    string
	Contact string
	Table   string
	Date    *time.Time
}

// NewReference returns a short uppercase order reference.
func NewReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// RecomputeTotal sets Total from the line items.
func (o *Order) RecomputeTotal() {
	o.Total = SumLines(o.Items)
}

// Validate checks the order invariants that do not depend on stored state.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}

	for i, line := range o.Items {
		if line.ID == "" {
			return NewValidationError(ErrCodeMissingField, "item %d: id is required", i)
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if !line.Category.Valid() {
			return NewValidationError(ErrCodeInvalidCategory, "item %d: unknown category %q", i, line.Category)
		}
		if line.Price < 0 {
			return NewValidationError(ErrCodeInvalidOrder, "item %d: price must not be negative", i)
		}
	}

	if o.Status != "" && !o.Status.Valid() {
		return ErrInvalidStatus
	}

	required := []struct {
		field string
		value string
	}{
		{"customerName", o.CustomerName},
		{"contactNumber", o.ContactNumber},
		{"tableNumber", o.TableNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewValidationError(ErrCodeMissingField, "%s is required", r.field)
		}
	}

	return nil
}

// CloneLines returns an independent copy of lines.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, line := range lines {
		out[i] = line
		if line.PrepTime != nil {
			prep := *line.PrepTime
			out[i].PrepTime = &prep
		}
	}
	return out
}
