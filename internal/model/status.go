package model

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// Statuses lists every order status.
var Statuses = []OrderStatus{StatusPending, StatusPreparing, StatusCompleted, StatusCancelled}

// strictTransitions is the forward-only graph used when strict mode is enabled.
var strictTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether orders in status s may be archived.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus converts a raw status string, rejecting unknown values.
func ParseStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// CanTransition reports whether an order may move from one status to another.
// Without strict mode any known status may follow any other.
func CanTransition(from, to OrderStatus, strict bool) bool {
	if !to.Valid() {
		return false
	}
	if !strict || from == to {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
