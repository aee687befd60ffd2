package model

import (
	"fmt"
	"net/http"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidMenuItem   = "INVALID_MENU_ITEM"
	ErrCodeInvalidOrder      = "INVALID_ORDER"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidCategory   = "INVALID_CATEGORY"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeNotArchivable     = "NOT_ARCHIVABLE"
	ErrCodeNotArchived       = "NOT_ARCHIVED"
	ErrCodeDuplicateOrder    = "DUPLICATE_ORDER"
	ErrCodeDuplicateMenuItem = "DUPLICATE_MENU_ITEM"
	ErrCodeMenuItemNotFound  = "MENU_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeInvalidFilter     = "INVALID_FILTER"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business rule violation that maps onto an HTTP status.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// NewValidationError creates a 400 domain error with a formatted message.
func NewValidationError(code, format string, args ...interface{}) *DomainError {
	return NewDomainError(code, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// Common domain errors
var (
	ErrMenuItemNotFound     = NewDomainError(ErrCodeMenuItemNotFound, "Item not found", http.StatusNotFound)
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found", http.StatusNotFound)
	ErrInvalidStatus        = NewDomainError(ErrCodeInvalidStatus, "Status must be one of Pending, Preparing, Completed, Cancelled", http.StatusBadRequest)
	ErrInvalidInitialStatus = NewDomainError(ErrCodeInvalidStatus, "New orders must be Pending", http.StatusBadRequest)
	ErrInvalidTransition    = NewDomainError(ErrCodeInvalidTransition, "Status transition is not allowed", http.StatusConflict)
	ErrNotArchivable        = NewDomainError(ErrCodeNotArchivable, "Only Completed or Cancelled orders can be archived", http.StatusConflict)
	ErrNotArchived          = NewDomainError(ErrCodeNotArchived, "Order must be archived to history before it is removed", http.StatusConflict)
	ErrDuplicateOrder       = NewDomainError(ErrCodeDuplicateOrder, "An order with this id already exists", http.StatusConflict)
	ErrDuplicateMenuItem    = NewDomainError(ErrCodeDuplicateMenuItem, "A menu item with this id already exists", http.StatusConflict)
	ErrEmptyOrder           = NewDomainError(ErrCodeInvalidOrder, "Order must contain at least one item", http.StatusBadRequest)
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero", http.StatusBadRequest)
)
