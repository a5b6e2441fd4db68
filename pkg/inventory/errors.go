package inventory

import "errors"

var (
	// ErrInsufficientStock is returned when a reservation exceeds the
	// available quantity of any requested item.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrAlreadyReserved is returned when an order attempts a second
	// reservation while one is still outstanding.
	ErrAlreadyReserved = errors.New("order already holds a reservation")
)
