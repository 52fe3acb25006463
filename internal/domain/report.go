package domain

import "time"

// FleetSummary is the dashboard headline: how many crates exist and where
// they stand. Lost counts crates loaned past the configured threshold.
type FleetSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Loaned    int `json:"loaned"`
	Lost      int `json:"lost"`
}

type AvailabilityRow struct {
	Size      string `json:"size"`
	Color     string `json:"color"`
	Available int    `json:"available"`
	Loaned    int    `json:"loaned"`
	Total     int    `json:"total"`
}

// SellerExposure is the running net of checkouts minus returns attributed to
// a seller over all time. It can drift from a true per-crate holder count on
// legacy data recorded before the wrong-holder rule was enforced.
type SellerExposure struct {
	SellerName  string `json:"seller_name"`
	ActiveLoans int    `json:"active_loans"`
}

type SellerActivity struct {
	SellerName string `json:"seller_name"`
	Checkouts  int    `json:"checkouts"`
	Returns    int    `json:"returns"`
}

// MovementRecord is a ledger entry joined with the seller's display name for
// listings and exports.
type MovementRecord struct {
	OccurredOn time.Time    `json:"occurred_on"`
	SellerName string       `json:"seller_name"`
	Kind       MovementKind `json:"kind"`
	Barcode    string       `json:"barcode"`
}

type CrateHistoryEntry struct {
	OccurredOn time.Time    `json:"occurred_on"`
	SellerName string       `json:"seller_name"`
	Kind       MovementKind `json:"kind"`
}

type OpenLoanSummary struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type OpenLoanDetail struct {
	Barcode      string    `json:"barcode"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	CheckedOutOn time.Time `json:"checked_out_on"`
}
