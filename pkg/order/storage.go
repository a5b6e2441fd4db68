package order

import (
	"context"
	"sync"
)

// Storage is the order persistence collaborator. Implementations live with
// the CMS persistence layer; the machine only requires that a reported
// success means the stored and in-memory status cannot diverge, so an
// UpdateStatus failure aborts the transition.
type Storage interface {
	// Create stores a new order.
	Create(ctx context.Context, o *Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id string) (*Order, error)

	// UpdateStatus persists a status change for the order.
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// MemoryStorage is an in-memory Storage for tests and development.
type MemoryStorage struct {
	mu     sync.RWMutex
	orders map[string]Order
}

// NewMemoryStorage creates an empty in-memory order store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		orders: make(map[string]Order),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, o *Order) error {
	if o == nil {
		return ErrNilOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o.clone()
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	// Return a copy to prevent external mutation of stored data
	out := o.clone()
	return &out, nil
}

func (s *MemoryStorage) UpdateStatus(ctx context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}
