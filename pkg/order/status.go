package order

// Status is the lifecycle state of an order. The set is closed: values
// outside this enumeration are rejected before any transition lookup.
type Status string

const (
	// StatusPendingAdmin is the initial state: the order awaits admin review.
	StatusPendingAdmin Status = "PENDING_ADMIN"
	// StatusPaid marks payment as confirmed by an admin.
	StatusPaid Status = "PAID"
	// StatusShipped marks the order as handed to delivery.
	StatusShipped Status = "SHIPPED"
	// StatusDelivered is terminal: the order reached the customer.
	StatusDelivered Status = "DELIVERED"
	// StatusRejected is terminal: an admin rejected the order.
	StatusRejected Status = "REJECTED"
	// StatusCancelled is terminal: the order was cancelled after payment.
	StatusCancelled Status = "CANCELLED"
)

var allStatuses = map[Status]struct{}{
	StatusPendingAdmin: {},
	StatusPaid:         {},
	StatusShipped:      {},
	StatusDelivered:    {},
	StatusRejected:     {},
	StatusCancelled:    {},
}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
