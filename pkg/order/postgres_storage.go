package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds the connection settings for the order store.
type PostgresConfig struct {
	ConnectionURL string        `env:"ORDER_DATABASE_URL,required"`
	MaxOpenConns  int32         `env:"ORDER_DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MinIdleConns  int32         `env:"ORDER_DATABASE_MIN_IDLE_CONNS" envDefault:"2"`
	RetryAttempts int           `env:"ORDER_DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"ORDER_DATABASE_RETRY_INTERVAL" envDefault:"5s"`
}

// PostgresStorage is a pgx-backed Storage over the CMS `orders` table.
// Items are stored as a JSONB column; the table itself is owned by the
// persistence service, this store only performs the CRUD the machine needs.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage wraps an existing connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

// ConnectPostgresStorage builds a pool from configuration, retrying
// transient startup failures before giving up.
func ConnectPostgresStorage(ctx context.Context, cfg PostgresConfig) (*PostgresStorage, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order database config: %w", err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MinIdleConns

	var lastErr error
	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return NewPostgresStorage(pool), nil
			}
			pool.Close()
		}
		lastErr = err
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}

	return nil, fmt.Errorf("failed to connect to order database: %w", lastErr)
}

func (s *PostgresStorage) Create(ctx context.Context, o *Order) error {
	if o == nil {
		return ErrNilOrder
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO orders (id, store_id, customer_id, items, total_amount, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.StoreID, o.CustomerID, items, o.TotalAmount, o.Currency, string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.ID, err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, id string) (*Order, error) {
	var (
		o      Order
		items  []byte
		status string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, store_id, customer_id, items, total_amount, currency, status, created_at, updated_at
		 FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.StoreID, &o.CustomerID, &items, &o.TotalAmount, &o.Currency, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order %s: %w", id, err)
	}

	o.Status = Status(status)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items of order %s: %w", id, err)
	}
	return &o, nil
}

func (s *PostgresStorage) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStorage) Close() {
	s.pool.Close()
}
