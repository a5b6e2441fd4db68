package order

// InventoryAction is the stock side effect attached to a transition rule.
type InventoryAction int

const (
	InventoryNone InventoryAction = iota
	InventoryReserve
	InventoryRestore
)

// MetadataValidator checks the metadata required to enter a target status.
// Validators are pure functions; a non-nil error blocks the transition and
// leaves the order unchanged.
type MetadataValidator func(md Metadata) error

// Rule describes one allowed (from, to) edge. The table below is static and
// exhaustive: every pair not listed is implicitly disallowed.
type Rule struct {
	Inventory        InventoryAction
	ValidateMetadata MetadataValidator
}

// metadataValidators are keyed by target status so that idempotent
// self-transitions re-run the same requirements as the inbound edge.
var metadataValidators = map[Status]MetadataValidator{
	StatusPaid:     requirePaymentApproval,
	StatusRejected: requireRejectionReason,
}

func requirePaymentApproval(md Metadata) error {
	if _, ok := md.String("adminId"); !ok {
		return &InvalidMetadataError{Target: StatusPaid, Reason: "adminId is required"}
	}
	if _, ok := md.String("paymentProof"); !ok {
		return &InvalidMetadataError{Target: StatusPaid, Reason: "paymentProof is required"}
	}
	return nil
}

func requireRejectionReason(md Metadata) error {
	if _, ok := md.String("reason"); !ok {
		return &InvalidMetadataError{Target: StatusRejected, Reason: "reason is required"}
	}
	return nil
}

var transitions = map[Status]map[Status]Rule{
	StatusPendingAdmin: {
		StatusPaid: {
			Inventory:        InventoryReserve,
			ValidateMetadata: metadataValidators[StatusPaid],
		},
		// Restore is a no-op when nothing was reserved for the order, so
		// rejecting a never-paid order cannot underflow stock.
		StatusRejected: {
			Inventory:        InventoryRestore,
			ValidateMetadata: metadataValidators[StatusRejected],
		},
	},
	StatusPaid: {
		StatusShipped:   {},
		StatusCancelled: {Inventory: InventoryRestore},
	},
	StatusShipped: {
		StatusDelivered: {},
	},
}

// CanTransition reports whether the edge (from, to) exists in the rule
// table. Self-transitions are handled separately by the machine and are not
// part of the table.
func CanTransition(from, to Status) bool {
	_, ok := ruleFor(from, to)
	return ok
}

func ruleFor(from, to Status) (Rule, bool) {
	edges, ok := transitions[from]
	if !ok {
		return Rule{}, false
	}
	rule, ok := edges[to]
	return rule, ok
}

// validatorFor returns the metadata requirements for entering target,
// independent of the source status.
func validatorFor(target Status) (MetadataValidator, bool) {
	v, ok := metadataValidators[target]
	return v, ok
}
