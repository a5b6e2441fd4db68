package notifications

import (
	"fmt"
	"time"
)

// Channel identifies a delivery transport. Adapters register under exactly
// one channel tag.
type Channel string

const (
	// ChannelPush delivers through the in-process real-time push hub.
	ChannelPush Channel = "PUSH"
	// ChannelTelegram delivers through the Telegram bot transport.
	ChannelTelegram Channel = "TELEGRAM"
	// ChannelEmail delivers through the transactional email provider.
	ChannelEmail Channel = "EMAIL"
	// ChannelMobilePush delivers through the mobile push gateway.
	ChannelMobilePush Channel = "MOBILE_PUSH"
)

// Priority orders queued dispatch work when the dispatcher runs with a
// bounded worker pool. It never affects delivery correctness.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// String returns the canonical tag for the priority level.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("PRIORITY(%d)", int(p))
	}
}

// Payload types used by the order subsystem. The field is a free-form domain
// tag, so callers may introduce their own values.
const (
	TypeOrderStatusChanged = "order-status-changed"
	TypeOrderCreated       = "order-created"
)

// Payload is a single logical notification fanned out across the requested
// recipients and channels.
type Payload struct {
	ID         string         `json:"id,omitempty"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Type       string         `json:"type"`
	Priority   Priority       `json:"priority"`
	Recipients []string       `json:"recipients"`
	Channels   []Channel      `json:"channels"`
	Data       map[string]any `json:"data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks the payload before any dispatch attempt. Failures here are
// fail-fast: no partial results are produced.
func (p Payload) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidPayload)
	}
	if p.Message == "" {
		return fmt.Errorf("%w: message is empty", ErrInvalidPayload)
	}
	if len(p.Recipients) == 0 {
		return fmt.Errorf("%w: recipients list is empty", ErrInvalidPayload)
	}
	if len(p.Channels) == 0 {
		return fmt.Errorf("%w: channels list is empty", ErrInvalidPayload)
	}
	return nil
}

// Result is the outcome of one (recipient, channel) delivery attempt.
// Failed attempts carry the adapter error text; they are data, not errors.
type Result struct {
	RecipientID string  `json:"recipient_id"`
	Channel     Channel `json:"channel"`
	Success     bool    `json:"success"`
	Error       string  `json:"error,omitempty"`
}
