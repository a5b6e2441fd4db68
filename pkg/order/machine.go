package order

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/events"
	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/inventory"
	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/logger"
	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

// Notifier is the dispatch capability the machine uses to describe committed
// transitions. notifications.Dispatcher satisfies it.
type Notifier interface {
	Send(ctx context.Context, payload notifications.Payload) ([]notifications.Result, error)
	SendToStore(ctx context.Context, storeID string, payload notifications.Payload) ([]notifications.Result, error)
}

// TransitionResult reports a committed (or idempotent) transition.
type TransitionResult struct {
	From Status
	To   Status
}

// Machine holds the authoritative status of one order. It validates and
// executes transitions against the static rule table, serializes concurrent
// attempts with a fail-fast per-order lock, records transition history, and
// fires inventory and notification side effects after each commit.
type Machine struct {
	mu      sync.RWMutex // guards order and history
	order   *Order
	history []TransitionRecord

	// transition is the single-flight token: of N racing TransitionTo calls
	// exactly one acquires it, the rest fail with ErrOrderLocked.
	transition sync.Mutex

	storage     Storage
	inventory   inventory.Hook
	notifier    Notifier
	channels    []notifications.Channel
	notifyStore bool
	publisher   events.Publisher
	logger      *slog.Logger
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithMachineLogger sets the logger for the Machine.
func WithMachineLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithStorage makes every status commit go through the persistence
// collaborator first. A persistence failure aborts the transition so the
// stored and in-memory status never diverge on a reported success.
func WithStorage(storage Storage) MachineOption {
	return func(m *Machine) {
		m.storage = storage
	}
}

// WithInventoryHook attaches the stock reservation collaborator invoked on
// rules that carry an inventory action.
func WithInventoryHook(hook inventory.Hook) MachineOption {
	return func(m *Machine) {
		m.inventory = hook
	}
}

// WithNotifier attaches the dispatcher that receives one payload per
// committed transition, fanned out over the given channels.
func WithNotifier(n Notifier, channels ...notifications.Channel) MachineOption {
	return func(m *Machine) {
		m.notifier = n
		if len(channels) > 0 {
			m.channels = channels
		}
	}
}

// WithStoreNotifications additionally notifies the store's owner and admins
// on every committed transition.
func WithStoreNotifications() MachineOption {
	return func(m *Machine) {
		m.notifyStore = true
	}
}

// WithEventPublisher streams committed transitions to the event bus,
// best-effort.
func WithEventPublisher(p events.Publisher) MachineOption {
	return func(m *Machine) {
		m.publisher = p
	}
}

// NewMachine creates a state machine owning the given order.
func NewMachine(o *Order, opts ...MachineOption) (*Machine, error) {
	if o == nil {
		return nil, ErrNilOrder
	}
	if !o.Status.Valid() {
		return nil, &InvalidStatusError{Status: o.Status}
	}

	m := &Machine{
		order: o,
		channels: []notifications.Channel{
			notifications.ChannelPush,
			notifications.ChannelTelegram,
			notifications.ChannelEmail,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Order returns a copy of the current order state.
func (m *Machine) Order() Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.order.clone()
}

// Status returns the current order status.
func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.order.Status
}

// History returns a copy of the append-only transition trail.
func (m *Machine) History() []TransitionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TransitionRecord, len(m.history))
	copy(out, m.history)
	return out
}

// TransitionTo validates and executes a transition to target. On success the
// status is committed, a TransitionRecord is appended and, after the lock is
// released, the rule's inventory action runs synchronously (failures are
// logged, never returned) and a notification describing the transition is
// dispatched asynchronously. Every failure path leaves the order unchanged.
//
// A self-transition is an idempotent no-op: metadata for the status is still
// validated, but no history is appended and no side effects fire.
func (m *Machine) TransitionTo(ctx context.Context, target Status, md Metadata) (*TransitionResult, error) {
	if !target.Valid() {
		return nil, &InvalidStatusError{Status: target}
	}

	if !m.transition.TryLock() {
		return nil, ErrOrderLocked
	}

	result, record, rule, err := m.apply(ctx, target, md)
	m.transition.Unlock()
	if err != nil {
		return nil, err
	}

	// Side effects run strictly after the commit and never gate its success.
	if record != nil {
		m.syncInventory(ctx, rule, *record)
		m.publishEvent(ctx, *record)
		m.dispatchNotification(ctx, *record)
	}

	return result, nil
}

// apply performs validation and the commit under the transition lock. The
// returned record is nil for idempotent self-transitions.
func (m *Machine) apply(ctx context.Context, target Status, md Metadata) (*TransitionResult, *TransitionRecord, Rule, error) {
	current := m.Status()

	if target == current {
		if validate, ok := validatorFor(target); ok {
			if err := validate(md); err != nil {
				return nil, nil, Rule{}, err
			}
		}
		return &TransitionResult{From: current, To: current}, nil, Rule{}, nil
	}

	rule, ok := ruleFor(current, target)
	if !ok {
		return nil, nil, Rule{}, &InvalidTransitionError{From: current, To: target}
	}

	if rule.ValidateMetadata != nil {
		if err := rule.ValidateMetadata(md); err != nil {
			return nil, nil, Rule{}, err
		}
	}

	if m.storage != nil {
		if err := m.storage.UpdateStatus(ctx, m.order.ID, target); err != nil {
			return nil, nil, Rule{}, fmt.Errorf("failed to persist status change: %w", err)
		}
	}

	record := TransitionRecord{
		From:       current,
		To:         target,
		Metadata:   md,
		OccurredAt: time.Now(),
	}

	m.mu.Lock()
	m.order.Status = target
	m.order.UpdatedAt = record.OccurredAt
	m.history = append(m.history, record)
	m.mu.Unlock()

	return &TransitionResult{From: current, To: target}, &record, rule, nil
}

// syncInventory runs the rule's stock action. Inventory reconciliation is a
// best-effort, separately monitored concern: a failure here is logged and
// does not roll back the committed status change.
func (m *Machine) syncInventory(ctx context.Context, rule Rule, record TransitionRecord) {
	if m.inventory == nil || rule.Inventory == InventoryNone {
		return
	}

	o := m.Order()
	items := make([]inventory.Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = inventory.Item{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
	}

	var err error
	switch rule.Inventory {
	case InventoryReserve:
		err = m.inventory.Reserve(ctx, o.ID, items)
	case InventoryRestore:
		err = m.inventory.Restore(ctx, o.ID, items)
	}
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Inventory hook failed after committed transition",
			logger.OrderID(o.ID),
			logger.Transition(string(record.From), string(record.To)),
			logger.Error(err),
		)
	}
}

// publishEvent streams the committed transition to the event bus.
func (m *Machine) publishEvent(ctx context.Context, record TransitionRecord) {
	if m.publisher == nil {
		return
	}

	o := m.Order()
	err := m.publisher.Publish(ctx, events.TransitionEvent{
		OrderID:    o.ID,
		StoreID:    o.StoreID,
		CustomerID: o.CustomerID,
		From:       string(record.From),
		To:         string(record.To),
		Metadata:   record.Metadata,
		OccurredAt: record.OccurredAt,
	})
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to publish transition event",
			logger.OrderID(o.ID),
			logger.Transition(string(record.From), string(record.To)),
			logger.Error(err),
		)
	}
}

// dispatchNotification hands one payload describing the transition to the
// dispatcher. Fire-and-forget: the transition's caller never awaits fan-out,
// and the dispatch outlives the caller's context.
func (m *Machine) dispatchNotification(ctx context.Context, record TransitionRecord) {
	if m.notifier == nil {
		return
	}

	o := m.Order()
	payload := m.buildPayload(o, record)
	ctx = context.WithoutCancel(ctx)

	go func() {
		if _, err := m.notifier.Send(ctx, payload); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to dispatch transition notification",
				logger.OrderID(o.ID),
				logger.Transition(string(record.From), string(record.To)),
				logger.Error(err),
			)
		}

		if m.notifyStore && o.StoreID != "" {
			if _, err := m.notifier.SendToStore(ctx, o.StoreID, payload); err != nil {
				m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to dispatch store notification",
					logger.OrderID(o.ID),
					logger.StoreID(o.StoreID),
					logger.Error(err),
				)
			}
		}
	}()
}

func (m *Machine) buildPayload(o Order, record TransitionRecord) notifications.Payload {
	return notifications.Payload{
		Title:      "Order status updated",
		Message:    fmt.Sprintf("Order %s moved from %s to %s", o.ID, record.From, record.To),
		Type:       notifications.TypeOrderStatusChanged,
		Priority:   priorityFor(record.To),
		Recipients: []string{o.CustomerID},
		Channels:   append([]notifications.Channel(nil), m.channels...),
		Data: map[string]any{
			"orderId":  o.ID,
			"storeId":  o.StoreID,
			"from":     string(record.From),
			"to":       string(record.To),
			"currency": o.Currency,
			"amount":   o.TotalAmount,
		},
	}
}

// priorityFor maps a committed target status to a dispatch priority.
// Money-adjacent transitions jump the queue under a bounded pool.
func priorityFor(target Status) notifications.Priority {
	switch target {
	case StatusPaid, StatusRejected, StatusCancelled:
		return notifications.PriorityHigh
	default:
		return notifications.PriorityMedium
	}
}
