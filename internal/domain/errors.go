package domain

import "errors"

// Error taxonomy surfaced to the presentation layer. All are recoverable at
// the request boundary; none are retried internally.
var (
	ErrSellerNotFound   = errors.New("seller not found")
	ErrCrateNotFound    = errors.New("crate not found")
	ErrNothingToReturn  = errors.New("crate has no movement history, nothing to return")
	ErrWrongHolder      = errors.New("crate is held by another seller")
	ErrAlreadyLoaned    = errors.New("crate is already loaned")
	ErrNotLoaned        = errors.New("crate is not loaned")
	ErrStoreUnavailable = errors.New("store unavailable")
)
