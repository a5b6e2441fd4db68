package notifications

import "errors"

var (
	// ErrInvalidPayload is returned when a payload is missing required fields.
	ErrInvalidPayload = errors.New("invalid notification payload")

	// ErrStoreNotFound is returned by SendToStore when the store directory
	// has no entry for the requested store.
	ErrStoreNotFound = errors.New("store not found")

	// ErrNoStoreDirectory is returned by SendToStore when the dispatcher was
	// built without a store directory.
	ErrNoStoreDirectory = errors.New("store directory is not configured")

	// ErrNoChannelAdapters is returned when a dispatcher is constructed
	// without a single channel adapter.
	ErrNoChannelAdapters = errors.New("at least one channel adapter is required")

	// ErrPoolClosed is returned when work is submitted to a closed pool.
	ErrPoolClosed = errors.New("worker pool is closed")
)
