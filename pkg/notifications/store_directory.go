package notifications

import (
	"context"
	"sync"
)

// StoreRecipients holds the notification targets resolved for one store.
type StoreRecipients struct {
	OwnerID  string
	AdminIDs []string
}

// StoreDirectory resolves a store id into its owner and admin set. It is an
// injected collaborator; the canonical implementation lives in the CMS
// persistence layer outside this module.
type StoreDirectory interface {
	// Resolve returns the recipients for the store, or ErrStoreNotFound.
	Resolve(ctx context.Context, storeID string) (*StoreRecipients, error)
}

// MemoryDirectory is an in-memory StoreDirectory for tests and development.
type MemoryDirectory struct {
	mu     sync.RWMutex
	stores map[string]StoreRecipients
}

// NewMemoryDirectory creates an empty in-memory store directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		stores: make(map[string]StoreRecipients),
	}
}

// Put registers or replaces the recipients for a store.
func (d *MemoryDirectory) Put(storeID string, recipients StoreRecipients) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores[storeID] = recipients
}

func (d *MemoryDirectory) Resolve(ctx context.Context, storeID string) (*StoreRecipients, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	recipients, ok := d.stores[storeID]
	if !ok {
		return nil, ErrStoreNotFound
	}
	// Return a copy to prevent external mutation of stored data
	out := StoreRecipients{
		OwnerID:  recipients.OwnerID,
		AdminIDs: append([]string(nil), recipients.AdminIDs...),
	}
	return &out, nil
}
