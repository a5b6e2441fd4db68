package telegram

import "errors"

var (
	// ErrMissingBotToken is returned when the adapter is built without a token.
	ErrMissingBotToken = errors.New("telegram: bot token is required")

	// ErrDeliveryFailed wraps transport and Bot API failures.
	ErrDeliveryFailed = errors.New("telegram: delivery failed")
)
