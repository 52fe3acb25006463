package repository

import (
	"context"
	"time"

	"crateledger-backend/internal/domain"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	GetByCode(ctx context.Context, code string) (*domain.Seller, error)
	GetByName(ctx context.Context, name string) (*domain.Seller, error)
	List(ctx context.Context) ([]domain.Seller, error)
	Rename(ctx context.Context, code, name string) error
	Delete(ctx context.Context, code string) error
}

type CrateRepository interface {
	Create(ctx context.Context, crate *domain.Crate) error
	GetByBarcode(ctx context.Context, barcode string) (*domain.Crate, error)
	List(ctx context.Context) ([]domain.Crate, error)
	UpdateStatus(ctx context.Context, barcode string, status domain.CrateStatus) error
	FleetCounts(ctx context.Context) (total, available, loaned int, err error)
	AvailabilityBreakdown(ctx context.Context) ([]domain.AvailabilityRow, error)
	DeleteAll(ctx context.Context) error
}

type MovementRepository interface {
	// Append inserts a movement and flips the crate's cached status from
	// `from` to `to` in a single transaction. The status update is a
	// compare-and-set on the expected prior status; a concurrent conflicting
	// write rolls the whole unit back.
	Append(ctx context.Context, m *domain.Movement, from, to domain.CrateStatus) error

	// GetLast returns the most recent movement for a barcode, or nil when
	// the crate has no history.
	GetLast(ctx context.Context, barcode string) (*domain.Movement, error)

	ListByBarcode(ctx context.Context, barcode string) ([]domain.Movement, error)
	Recent(ctx context.Context, limit int) ([]domain.MovementRecord, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]domain.MovementRecord, error)
	HistoryForCrate(ctx context.Context, barcode string, limit int) ([]domain.CrateHistoryEntry, error)

	// CountLost counts crates with a checkout older than the cutoff whose
	// cached status is still loaned and for which no return movement exists
	// anywhere in the ledger. The global-absence clause is deliberate; see
	// DESIGN.md.
	CountLost(ctx context.Context, cutoff time.Time) (int, error)

	ActiveExposure(ctx context.Context) ([]domain.SellerExposure, error)
	SellerActivity(ctx context.Context, from, to time.Time) ([]domain.SellerActivity, error)
	OpenLoanSummary(ctx context.Context, sellerCode string) ([]domain.OpenLoanSummary, error)
	OpenLoanDetail(ctx context.Context, sellerCode string) ([]domain.OpenLoanDetail, error)

	// PurgeAll deletes every movement and resets every crate to available in
	// one transaction.
	PurgeAll(ctx context.Context) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int32, hash string) error
}
