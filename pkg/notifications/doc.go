// Package notifications provides a multi-channel notification dispatcher
// with per-pair failure isolation and pluggable channel adapters.
//
// A single Payload addressed to R recipients over C recognized channels
// produces exactly R×C delivery attempts. Every attempt resolves to its own
// Result; a slow or failing adapter affects only its own entries.
//
// # Basic Usage
//
//	push := notifications.NewMemoryChannel(notifications.ChannelPush)
//	dispatcher, err := notifications.NewDispatcher(
//	    []notifications.ChannelDeliverer{push},
//	    notifications.WithAuditStorage(notifications.NewMemoryAudit()),
//	)
//	if err != nil {
//	    // Handle error
//	}
//
//	results, err := dispatcher.Send(ctx, notifications.Payload{
//	    Title:      "Order update",
//	    Message:    "Your order has been shipped",
//	    Type:       notifications.TypeOrderStatusChanged,
//	    Recipients: []string{"customer-1"},
//	    Channels:   []notifications.Channel{notifications.ChannelPush},
//	})
//
// # Store fan-out
//
// SendToStore resolves a store id into its owner and admin set through an
// injected StoreDirectory and then behaves exactly like Send. A store that
// cannot be resolved fails synchronously with ErrStoreNotFound, before any
// delivery attempt.
//
// # Scheduling
//
// By default each (recipient, channel) attempt runs on its own goroutine.
// With WithWorkerPool(n) attempts run on n workers and queued work is
// ordered by payload Priority: CRITICAL payloads overtake queued LOW, MEDIUM
// and HIGH work. Priority influences ordering under contention only, never
// delivery correctness.
//
// # Audit
//
// When an AuditStorage is configured, every dispatch writes a best-effort
// AuditRecord after the fan-out resolves. Audit failures are logged and do
// not change the returned results.
package notifications
