package redispush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

// Config holds the Redis connection settings for the push bridge.
type Config struct {
	ConnectionURL  string        `env:"PUSH_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	ChannelPrefix  string        `env:"PUSH_REDIS_CHANNEL_PREFIX" envDefault:"notifications:"`
	RetryAttempts  int           `env:"PUSH_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"PUSH_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"PUSH_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Adapter bridges the MOBILE_PUSH channel to Redis pub/sub so that push
// gateways in other processes can fan the message out to device connections.
// Publishing to a channel with zero subscribers still succeeds: pub/sub
// delivery to offline gateways is not this adapter's concern.
type Adapter struct {
	client *redis.Client
	prefix string
}

// NewAdapter wraps an existing Redis client.
func NewAdapter(client *redis.Client, prefix string) *Adapter {
	if prefix == "" {
		prefix = "notifications:"
	}
	return &Adapter{client: client, prefix: prefix}
}

// Connect builds a client from configuration, retrying transient failures,
// and returns the adapter.
func Connect(ctx context.Context, cfg Config) (*Adapter, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConnectionURL, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return NewAdapter(client, cfg.ChannelPrefix), nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

func (a *Adapter) Channel() notifications.Channel {
	return notifications.ChannelMobilePush
}

func (a *Adapter) AttemptDeliver(ctx context.Context, recipientID string, payload notifications.Payload) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	if err := a.client.Publish(ctx, a.prefix+recipientID, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish push message for %s: %w", recipientID, err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (a *Adapter) Close() error {
	return a.client.Close()
}
