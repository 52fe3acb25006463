package domain

import "time"

type CrateStatus string

const (
	CrateStatusAvailable CrateStatus = "AVAILABLE"
	CrateStatusLoaned    CrateStatus = "LOANED"
)

type CrateCondition string

const (
	CrateConditionGood    CrateCondition = "GOOD"
	CrateConditionWorn    CrateCondition = "WORN"
	CrateConditionDamaged CrateCondition = "DAMAGED"
)

// Crate is a reusable container identified by its barcode. Status is a
// materialized cache of the movement history; replaying the ledger with
// StatusFromHistory must always yield the same value.
type Crate struct {
	Barcode      string         `json:"barcode"`
	Size         string         `json:"size"`
	Color        string         `json:"color"`
	Condition    CrateCondition `json:"condition"`
	RegisteredOn time.Time      `json:"registered_on"`
	Status       CrateStatus    `json:"status"`
}
