package model

import (
	"strings"
	"time"
)

// MenuItem represents a dish in the catalogue.
type MenuItem struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    Category  `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Rating      float64   `json:"rating" db:"rating"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	PrepTime    *int      `json:"prepTime,omitempty" db:"prep_time"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

// Validate checks the catalogue invariants of a menu item.
func (m *MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return NewValidationError(ErrCodeMissingField, "name is required")
	}
	if !m.Category.Valid() {
		return NewValidationError(ErrCodeInvalidCategory, "unknown category %q", m.Category)
	}
	if m.Price < 0 {
		return NewValidationError(ErrCodeInvalidMenuItem, "price must not be negative")
	}
	if m.Rating < 0 || m.Rating > 5 {
		return NewValidationError(ErrCodeInvalidMenuItem, "rating must be between 0 and 5")
	}
	if m.PrepTime != nil && *m.PrepTime <= 0 {
		return NewValidationError(ErrCodeInvalidMenuItem, "prepTime must be a positive number of minutes")
	}
	return nil
}

// MenuItemUpdate is a partial update of a menu item. Nil fields are left unchanged.
type MenuItemUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	PrepTime    *int      `json:"prepTime,omitempty"`
}

// Apply copies the set fields of u onto item.
func (u *MenuItemUpdate) Apply(item *MenuItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.Rating != nil {
		item.Rating = *u.Rating
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Image != nil {
		item.Image = *u.Image
	}
	if u.PrepTime != nil {
		prep := *u.PrepTime
		item.PrepTime = &prep
	}
}
