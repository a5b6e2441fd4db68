package inventory

import (
	"context"
	"fmt"
	"sync"
)

// Item is one reserved or restored stock line.
type Item struct {
	ProductID string
	VariantID string
	Quantity  int
}

// key identifies a stock bucket. Variants hold stock independently of their
// parent product.
func (i Item) key() string {
	if i.VariantID == "" {
		return i.ProductID
	}
	return i.ProductID + "/" + i.VariantID
}

// Hook is the inventory collaborator invoked by the order state machine as a
// transition side effect. Errors are caught and logged by the caller, never
// propagated to the transition's initiator.
type Hook interface {
	// Reserve withholds stock for the order's items.
	Reserve(ctx context.Context, orderID string, items []Item) error

	// Restore returns previously reserved stock. Restoring an order that
	// holds no reservation is a no-op, so rejecting a never-paid order is
	// always safe.
	Restore(ctx context.Context, orderID string, items []Item) error
}

// Memory is an in-memory Hook backed by a per-order reservation ledger.
type Memory struct {
	mu       sync.Mutex
	stock    map[string]int
	reserved map[string][]Item // orderID -> outstanding reservation
}

// NewMemory creates an empty in-memory inventory.
func NewMemory() *Memory {
	return &Memory{
		stock:    make(map[string]int),
		reserved: make(map[string][]Item),
	}
}

// SetStock sets the available quantity for a product/variant bucket.
func (m *Memory) SetStock(productID, variantID string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[Item{ProductID: productID, VariantID: variantID}.key()] = quantity
}

// Stock returns the currently available quantity for a product/variant.
func (m *Memory) Stock(productID, variantID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[Item{ProductID: productID, VariantID: variantID}.key()]
}

func (m *Memory) Reserve(ctx context.Context, orderID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reserved[orderID]; ok {
		return fmt.Errorf("%w: order %s", ErrAlreadyReserved, orderID)
	}

	// Validate the whole reservation before touching stock so a failure
	// leaves nothing half-reserved.
	for _, item := range items {
		if available := m.stock[item.key()]; available < item.Quantity {
			return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientStock, item.key(), available, item.Quantity)
		}
	}

	for _, item := range items {
		m.stock[item.key()] -= item.Quantity
	}
	m.reserved[orderID] = append([]Item(nil), items...)
	return nil
}

func (m *Memory) Restore(ctx context.Context, orderID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	held, ok := m.reserved[orderID]
	if !ok {
		// Nothing was reserved for this order. Rejecting an order that
		// never reached PAID lands here.
		return nil
	}

	for _, item := range held {
		m.stock[item.key()] += item.Quantity
	}
	delete(m.reserved, orderID)
	return nil
}

// Reserved reports whether the order holds an outstanding reservation.
func (m *Memory) Reserved(orderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.reserved[orderID]
	return ok
}
