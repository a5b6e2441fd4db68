// Package order implements the order lifecycle state machine for the
// e-commerce CMS.
//
// An order moves between a closed set of statuses through a static,
// exhaustive transition table:
//
//	PENDING_ADMIN → PAID      (requires adminId + paymentProof; reserves stock)
//	PENDING_ADMIN → REJECTED  (requires reason; restores stock if reserved)
//	PAID          → SHIPPED
//	PAID          → CANCELLED (restores stock)
//	SHIPPED       → DELIVERED
//
// DELIVERED, REJECTED and CANCELLED are terminal. Every pair not listed is
// disallowed, including transitions out of terminal states.
//
// # Concurrency
//
// Each Machine serializes transitions on its order with a fail-fast lock: of
// N racing TransitionTo calls exactly one proceeds, the others return
// ErrOrderLocked immediately. There is no wait queue; callers re-issue if
// they want to retry. Self-transitions are always allowed as idempotent
// no-ops so identical update requests can be retried safely.
//
// # Side effects
//
// Once a transition commits, the rule's inventory action runs synchronously
// against the injected inventory.Hook and one notification payload
// describing the transition is handed to the dispatcher asynchronously.
// Neither side effect gates the transition's success: their failures are
// logged and reconciled elsewhere.
//
// # Persistence
//
// With WithStorage the status change is persisted before the in-memory
// commit; a storage failure aborts the transition so a reported success
// always reflects both views.
package order
