package redispush

import "errors"

var (
	// ErrInvalidConnectionURL is returned when the Redis URL cannot be parsed.
	ErrInvalidConnectionURL = errors.New("redispush: invalid connection URL")

	// ErrNotReady is returned when all connection attempts fail.
	ErrNotReady = errors.New("redispush: redis is not ready")
)
