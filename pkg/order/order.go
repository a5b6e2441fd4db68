package order

import (
	"time"

	"github.com/google/uuid"
)

// Item is one ordered product line.
type Item struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Metadata is the free-form context attached to a transition request:
// reason, adminId, paymentProof, caller-supplied hook references. Required
// keys depend on the (from, to) rule.
type Metadata map[string]any

// String returns the value for key when it is a non-empty string.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Order is the aggregate owned by its state machine instance. Status is
// mutated only through successful transitions, never directly.
type Order struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	CustomerID  string    `json:"customer_id"`
	Items       []Item    `json:"items"`
	TotalAmount float64   `json:"total_amount"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOrder creates an order in the initial PENDING_ADMIN state. A missing id
// is generated.
func NewOrder(storeID, customerID string, items []Item, totalAmount float64, currency string) *Order {
	now := time.Now()
	return &Order{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		CustomerID:  customerID,
		Items:       append([]Item(nil), items...),
		TotalAmount: totalAmount,
		Currency:    currency,
		Status:      StatusPendingAdmin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// clone returns a deep copy so readers never observe in-flight mutation.
func (o *Order) clone() Order {
	out := *o
	out.Items = append([]Item(nil), o.Items...)
	return out
}

// TransitionRecord is one entry of the order's append-only audit trail.
// Records are appended exactly once per successful transition and never
// removed; their sequence order is authoritative.
type TransitionRecord struct {
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
