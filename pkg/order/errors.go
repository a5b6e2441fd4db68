package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderLocked is returned when another transition on the same order
	// is already in flight. Callers re-issue if desired; there is no queue.
	ErrOrderLocked = errors.New("order is locked by a concurrent transition")

	// ErrNilOrder is returned when a machine is constructed without an order.
	ErrNilOrder = errors.New("order cannot be nil")

	// ErrOrderNotFound is returned by storage implementations when no order
	// exists under the requested id.
	ErrOrderNotFound = errors.New("order not found")
)

// InvalidStatusError indicates the requested target is not a member of the
// status enumeration.
type InvalidStatusError struct {
	Status Status
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown order status '%s'", string(e.Status))
}

// InvalidTransitionError indicates no rule exists for the requested edge.
// It names both statuses so a caller can explain "why not" without
// re-deriving the transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// InvalidMetadataError indicates the metadata required to enter the target
// status is missing or malformed.
type InvalidMetadataError struct {
	Target Status
	Reason string
}

func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid metadata for transition to %s: %s", e.Target, e.Reason)
}

func IsInvalidStatusError(err error) bool {
	var e *InvalidStatusError
	return errors.As(err, &e)
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func IsInvalidMetadataError(err error) bool {
	var e *InvalidMetadataError
	return errors.As(err, &e)
}
