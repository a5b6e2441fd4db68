package push

import "errors"

var (
	// ErrNoActiveConnection is returned when the recipient has no open
	// websocket connection to deliver to.
	ErrNoActiveConnection = errors.New("push: no active connection for recipient")

	// ErrWriteFailed is returned when every open connection rejected the write.
	ErrWriteFailed = errors.New("push: failed to write to any connection")
)
