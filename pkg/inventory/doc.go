// Package inventory defines the stock reservation hook consumed by the
// order state machine, plus an in-memory reference implementation.
//
// Reserve and Restore are invoked as best-effort transition side effects:
// the state machine logs their errors but never rolls back a committed
// status change because of them. The in-memory implementation keeps a
// per-order reservation ledger, which makes Restore a safe no-op for orders
// that never reserved stock.
package inventory
