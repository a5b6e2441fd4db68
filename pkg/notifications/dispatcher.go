package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/logger"
)

// Dispatcher fans a single payload out across every requested
// (recipient, channel) pair. Pairs are attempted independently: one slow or
// failing adapter never blocks or corrupts the others.
type Dispatcher struct {
	adapters  map[Channel]ChannelDeliverer
	audit     AuditStorage
	directory StoreDirectory
	pool      *workerPool
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithAuditStorage enables best-effort persistence of dispatch audit records.
func WithAuditStorage(storage AuditStorage) DispatcherOption {
	return func(d *Dispatcher) {
		d.audit = storage
	}
}

// WithStoreDirectory enables SendToStore recipient resolution.
func WithStoreDirectory(directory StoreDirectory) DispatcherOption {
	return func(d *Dispatcher) {
		d.directory = directory
	}
}

// WithWorkerPool bounds dispatch concurrency to the given number of workers.
// Queued attempts are scheduled by payload priority. Without a pool every
// pair runs on its own goroutine and priority is inert.
func WithWorkerPool(workers int) DispatcherOption {
	return func(d *Dispatcher) {
		d.pool = newWorkerPool(workers)
	}
}

// NewDispatcher creates a dispatcher over the given channel adapters. Each
// adapter is registered under its own channel tag; registering two adapters
// for the same tag keeps the last one.
func NewDispatcher(adapters []ChannelDeliverer, opts ...DispatcherOption) (*Dispatcher, error) {
	if len(adapters) == 0 {
		return nil, ErrNoChannelAdapters
	}

	d := &Dispatcher{
		adapters: make(map[Channel]ChannelDeliverer, len(adapters)),
		logger:   slog.Default(),
	}
	for _, a := range adapters {
		d.adapters[a.Channel()] = a
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Send validates the payload and attempts delivery for every
// (recipient, channel) pair. Unrecognized channel tags are skipped and do
// not appear in the results; delivery failures do appear, with Success=false.
// Send returns once every attempted pair has resolved.
func (d *Dispatcher) Send(ctx context.Context, payload Payload) ([]Result, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	if payload.ID == "" {
		payload.ID = uuid.New().String()
	}
	if payload.CreatedAt.IsZero() {
		payload.CreatedAt = time.Now()
	}

	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)

	for _, channel := range payload.Channels {
		adapter, ok := d.adapters[channel]
		if !ok {
			// Not a delivery failure: the pair produces no result entry.
			d.logger.LogAttrs(ctx, slog.LevelDebug, "Skipping unrecognized notification channel",
				logger.NotificationID(payload.ID),
				logger.Channel(string(channel)),
			)
			continue
		}

		for _, recipientID := range payload.Recipients {
			wg.Add(1)
			attempt := func() {
				defer wg.Done()
				result := d.attempt(ctx, adapter, recipientID, payload)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}

			if d.pool != nil {
				if err := d.pool.Submit(payload.Priority, attempt); err != nil {
					// Pool shut down mid-dispatch; record the pair as failed.
					wg.Done()
					mu.Lock()
					results = append(results, Result{
						RecipientID: recipientID,
						Channel:     channel,
						Success:     false,
						Error:       err.Error(),
					})
					mu.Unlock()
				}
				continue
			}
			go attempt()
		}
	}

	wg.Wait()

	d.writeAudit(ctx, payload, results)

	return results, nil
}

// SendToStore resolves the store's owner and admins into a recipient list
// and then behaves as Send. Resolution failure is a precondition failure and
// surfaces synchronously, before any delivery attempt.
func (d *Dispatcher) SendToStore(ctx context.Context, storeID string, payload Payload) ([]Result, error) {
	if d.directory == nil {
		return nil, ErrNoStoreDirectory
	}

	recipients, err := d.directory.Resolve(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store %s: %w", storeID, err)
	}

	seen := make(map[string]struct{}, len(recipients.AdminIDs)+1)
	var ids []string
	for _, id := range append([]string{recipients.OwnerID}, recipients.AdminIDs...) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	payload.Recipients = ids

	return d.Send(ctx, payload)
}

// Close shuts down the worker pool, if any, draining queued attempts first.
func (d *Dispatcher) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// attempt runs one delivery and converts any outcome, including an adapter
// panic, into a Result so failures stay isolated per pair.
func (d *Dispatcher) attempt(ctx context.Context, adapter ChannelDeliverer, recipientID string, payload Payload) (result Result) {
	result = Result{
		RecipientID: recipientID,
		Channel:     adapter.Channel(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Error = fmt.Sprintf("channel adapter panic: %v", r)
			d.logger.LogAttrs(ctx, slog.LevelError, "Channel adapter panicked",
				logger.NotificationID(payload.ID),
				logger.RecipientID(recipientID),
				logger.Channel(string(adapter.Channel())),
				slog.Any("panic", r),
			)
		}
	}()

	if err := adapter.AttemptDeliver(ctx, recipientID, payload); err != nil {
		result.Success = false
		result.Error = err.Error()
		d.logger.LogAttrs(ctx, slog.LevelWarn, "Notification delivery failed",
			logger.NotificationID(payload.ID),
			logger.RecipientID(recipientID),
			logger.Channel(string(adapter.Channel())),
			logger.Error(err),
		)
		return result
	}

	result.Success = true
	return result
}

// writeAudit persists the dispatch trace. Failures are logged and swallowed:
// the audit trail never alters delivery outcomes.
func (d *Dispatcher) writeAudit(ctx context.Context, payload Payload, results []Result) {
	if d.audit == nil {
		return
	}

	record := AuditRecord{
		ID:        uuid.New().String(),
		Payload:   payload,
		Results:   results,
		CreatedAt: time.Now(),
	}
	if err := d.audit.Save(ctx, record); err != nil {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to persist notification audit record",
			logger.NotificationID(payload.ID),
			logger.Error(err),
		)
	}
}
