package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// OrderID records the order identifier under the key "order_id".
func OrderID(id string) slog.Attr {
	return slog.String("order_id", id)
}

// StoreID records the store identifier under the key "store_id".
func StoreID(id string) slog.Attr {
	return slog.String("store_id", id)
}

// RecipientID records the notification recipient under the key "recipient_id".
func RecipientID(id string) slog.Attr {
	return slog.String("recipient_id", id)
}

// NotificationID records the notification identifier under the key "notification_id".
func NotificationID(id string) slog.Attr {
	return slog.String("notification_id", id)
}

// Channel records a delivery channel tag under the key "channel".
func Channel(tag string) slog.Attr {
	return slog.String("channel", tag)
}

// Status records an order status under the key "status".
func Status(status string) slog.Attr {
	return slog.String("status", status)
}

// Transition groups a from/to status pair under the key "transition".
func Transition(from, to string) slog.Attr {
	return slog.Attr{Key: "transition", Value: slog.GroupValue(
		slog.String("from", from),
		slog.String("to", to),
	)}
}
