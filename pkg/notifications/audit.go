package notifications

import (
	"context"
	"sync"
	"time"
)

// AuditRecord is the best-effort trace of one dispatch call. It exists for
// operators, not for the dispatch outcome: a failed audit write never alters
// the returned results.
type AuditRecord struct {
	ID        string    `json:"id" bson:"_id"`
	Payload   Payload   `json:"payload" bson:"payload"`
	Results   []Result  `json:"results" bson:"results"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// AuditStorage persists dispatch audit records.
type AuditStorage interface {
	Save(ctx context.Context, record AuditRecord) error
}

// MemoryAudit is an in-memory AuditStorage for tests and development.
type MemoryAudit struct {
	mu      sync.Mutex
	records []AuditRecord
}

// NewMemoryAudit creates an empty in-memory audit store.
func NewMemoryAudit() *MemoryAudit {
	return &MemoryAudit{}
}

func (s *MemoryAudit) Save(ctx context.Context, record AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of all saved audit records.
func (s *MemoryAudit) Records() []AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AuditRecord, len(s.records))
	copy(out, s.records)
	return out
}
