package domain

// Seller is a field agent who can hold crates. Deleting a seller does not
// rewrite the ledger; historical movements keep referencing the code.
type Seller struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
