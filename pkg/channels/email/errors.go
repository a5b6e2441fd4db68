package email

import "errors"

var (
	// ErrInvalidConfig is returned when required Postmark settings are missing.
	ErrInvalidConfig = errors.New("email: invalid config")

	// ErrSendFailed is returned when the provider rejects the message.
	ErrSendFailed = errors.New("email: failed to send")
)
