package service

import (
	"context"
	"time"

	"crateledger-backend/internal/domain"
)

// LedgerService is the loan reconciliation engine: it decides which movements
// are legal, keeps the cached crate status in step with the ledger, and
// derives loan aging and exposure from it.
type LedgerService interface {
	// RecordMovement validates and appends one checkout or return. The
	// seller may be referenced by code or by display name. Rules are
	// evaluated in order: seller exists, crate exists, return-with-no-history,
	// wrong holder, already loaned, not loaned.
	RecordMovement(ctx context.Context, seller, barcode string, kind domain.MovementKind, now time.Time) (*domain.Movement, error)

	// LostCrateCount counts loans older than the configured threshold under
	// the literal global-absence rule (no return event for the barcode at
	// all). See DESIGN.md for the known ambiguity.
	LostCrateCount(ctx context.Context, asOf time.Time) (int, error)

	// ActiveExposure is the per-seller running net of checkouts minus
	// returns over all time, highest first.
	ActiveExposure(ctx context.Context) ([]domain.SellerExposure, error)

	// OpenLoansFor lists a seller's open loans grouped by (size, color) and
	// individually, most recent checkout first.
	OpenLoansFor(ctx context.Context, sellerCode string) ([]domain.OpenLoanSummary, []domain.OpenLoanDetail, error)

	// PurgeMovements deletes the entire ledger and resets every crate to
	// available, atomically. Period-end reset; irreversible.
	PurgeMovements(ctx context.Context) error

	// ReconcileStatuses replays every crate's history and rewrites cached
	// statuses that drifted. Returns the number of crates repaired.
	ReconcileStatuses(ctx context.Context) (int, error)
}

type ReportService interface {
	FleetSummary(ctx context.Context, asOf time.Time) (*domain.FleetSummary, error)
	AvailabilityBreakdown(ctx context.Context) ([]domain.AvailabilityRow, error)
	RecentMovements(ctx context.Context, limit int) ([]domain.MovementRecord, error)
	MovementsWindow(ctx context.Context, from, to time.Time) ([]domain.MovementRecord, error)
	SellerActivity(ctx context.Context, from, to time.Time) ([]domain.SellerActivity, error)
	CrateHistory(ctx context.Context, barcode string, limit int) (*domain.Crate, []domain.CrateHistoryEntry, error)
	ExposureRanking(ctx context.Context) ([]domain.SellerExposure, error)
}

type CrateService interface {
	Register(ctx context.Context, barcode, size, color string, condition domain.CrateCondition, now time.Time) (*domain.Crate, error)
	Get(ctx context.Context, barcode string) (*domain.Crate, error)
	List(ctx context.Context) ([]domain.Crate, error)
	PurgeCrates(ctx context.Context) error
}

type SellerService interface {
	Create(ctx context.Context, code, name string) (*domain.Seller, error)
	List(ctx context.Context) ([]domain.Seller, error)
	Rename(ctx context.Context, code, name string) error
	Delete(ctx context.Context, code string) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Register(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error)
	// RehashPasswords bcrypt-hashes any stored credentials that are still
	// plaintext from the legacy system. Returns the number updated.
	RehashPasswords(ctx context.Context) (int, error)
}

type EmailService interface {
	SendLostCrateReport(ctx context.Context, to string, count int, asOf time.Time) error
}
