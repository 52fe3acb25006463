package domain

import "time"

type MovementKind string

// Ledger kinds keep the legacy wire values used by existing data and exports.
const (
	MovementKindCheckout MovementKind = "Sale"
	MovementKindReturn   MovementKind = "Entra"
)

func (k MovementKind) Valid() bool {
	return k == MovementKindCheckout || k == MovementKindReturn
}

// Movement is one immutable ledger entry. The ledger is append-only; the only
// write besides insert is the administrative purge.
type Movement struct {
	ID         int64        `json:"id"`
	SellerCode string       `json:"seller_code"`
	Barcode    string       `json:"barcode"`
	Kind       MovementKind `json:"kind"`
	OccurredOn time.Time    `json:"occurred_on"`
}

// StatusFromHistory derives a crate's status by replaying its movement
// history. The crate is loaned iff its most recent movement is a checkout.
// This is the source of truth the cached status must agree with.
func StatusFromHistory(history []Movement) CrateStatus {
	if len(history) == 0 {
		return CrateStatusAvailable
	}
	last := history[0]
	for _, m := range history[1:] {
		if m.OccurredOn.After(last.OccurredOn) {
			last = m
		}
	}
	if last.Kind == MovementKindCheckout {
		return CrateStatusLoaned
	}
	return CrateStatusAvailable
}
