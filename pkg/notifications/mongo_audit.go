package notifications

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoAuditConfig represents the configuration for the audit database.
type MongoAuditConfig struct {
	ConnectionURL  string        `env:"NOTIFICATION_AUDIT_MONGODB_URL,required"`
	Database       string        `env:"NOTIFICATION_AUDIT_MONGODB_DATABASE" envDefault:"notifications"`
	Collection     string        `env:"NOTIFICATION_AUDIT_MONGODB_COLLECTION" envDefault:"dispatch_audit"`
	ConnectTimeout time.Duration `env:"NOTIFICATION_AUDIT_MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"NOTIFICATION_AUDIT_MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"NOTIFICATION_AUDIT_MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// MongoAudit is a MongoDB-backed AuditStorage. Audit writes are best-effort
// by contract, so callers treat Save failures as log-only events.
type MongoAudit struct {
	collection *mongo.Collection
}

// NewMongoAudit wraps an existing collection. Use ConnectMongoAudit to build
// one from configuration.
func NewMongoAudit(collection *mongo.Collection) *MongoAudit {
	return &MongoAudit{collection: collection}
}

// ConnectMongoAudit connects to MongoDB using the provided configuration and
// returns an audit store bound to the configured collection. It retries the
// connection per the config before giving up.
func ConnectMongoAudit(ctx context.Context, cfg MongoAuditConfig) (*MongoAudit, error) {
	var lastErr error
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return NewMongoAudit(client.Database(cfg.Database).Collection(cfg.Collection)), nil
			}
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, fmt.Errorf("failed to connect to audit mongodb: %w", lastErr)
}

func (s *MongoAudit) Save(ctx context.Context, record AuditRecord) error {
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert audit record %s: %w", record.ID, err)
	}
	return nil
}
