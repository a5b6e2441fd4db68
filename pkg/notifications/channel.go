package notifications

import (
	"context"
	"sync"
	"time"
)

// ChannelDeliverer attempts delivery of one payload to one recipient over a
// single transport. Implementations must capture internal failures and
// return them as errors rather than panicking, and own their per-attempt
// timeout discipline.
type ChannelDeliverer interface {
	// Channel returns the tag this adapter is registered under.
	Channel() Channel

	// AttemptDeliver delivers the payload to a single recipient.
	AttemptDeliver(ctx context.Context, recipientID string, payload Payload) error
}

// Delivery is one recorded MemoryChannel attempt.
type Delivery struct {
	RecipientID string
	Payload     Payload
	At          time.Time
}

// MemoryChannel is an in-memory reference adapter. It records every attempt
// and can be scripted to fail for specific recipients or to delay each
// delivery, which makes it the workhorse for dispatcher tests and local
// development.
type MemoryChannel struct {
	tag     Channel
	delay   time.Duration
	failFor map[string]error

	mu         sync.Mutex
	deliveries []Delivery
}

// MemoryChannelOption configures a MemoryChannel.
type MemoryChannelOption func(*MemoryChannel)

// WithDeliveryDelay makes every attempt sleep before resolving, simulating a
// slow third-party transport.
func WithDeliveryDelay(d time.Duration) MemoryChannelOption {
	return func(c *MemoryChannel) {
		c.delay = d
	}
}

// WithFailureFor scripts a delivery failure for the given recipient.
func WithFailureFor(recipientID string, err error) MemoryChannelOption {
	return func(c *MemoryChannel) {
		c.failFor[recipientID] = err
	}
}

// NewMemoryChannel creates an in-memory adapter registered under tag.
func NewMemoryChannel(tag Channel, opts ...MemoryChannelOption) *MemoryChannel {
	c := &MemoryChannel{
		tag:     tag,
		failFor: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryChannel) Channel() Channel {
	return c.tag
}

func (c *MemoryChannel) AttemptDeliver(ctx context.Context, recipientID string, payload Payload) error {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err, ok := c.failFor[recipientID]; ok {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliveries = append(c.deliveries, Delivery{
		RecipientID: recipientID,
		Payload:     payload,
		At:          time.Now(),
	})
	return nil
}

// Deliveries returns a copy of all successful deliveries recorded so far.
func (c *MemoryChannel) Deliveries() []Delivery {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Delivery, len(c.deliveries))
	copy(out, c.deliveries)
	return out
}
