package service

import (
	"context"
	"fmt"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/logger"
	"crateledger-backend/internal/repository"
)

type ledgerService struct {
	movementRepo  repository.MovementRepository
	crateRepo     repository.CrateRepository
	sellerRepo    repository.SellerRepository
	lostThreshold time.Duration
}

func NewLedgerService(
	movementRepo repository.MovementRepository,
	crateRepo repository.CrateRepository,
	sellerRepo repository.SellerRepository,
	lostThreshold time.Duration,
) LedgerService {
	return &ledgerService{
		movementRepo:  movementRepo,
		crateRepo:     crateRepo,
		sellerRepo:    sellerRepo,
		lostThreshold: lostThreshold,
	}
}

func (s *ledgerService) RecordMovement(ctx context.Context, seller, barcode string, kind domain.MovementKind, now time.Time) (*domain.Movement, error) {
	sl, err := s.sellerRepo.GetByCode(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if sl == nil {
		// Operators key movements by whatever is on the paperwork; accept
		// the display name as a fallback reference.
		sl, err = s.sellerRepo.GetByName(ctx, seller)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}
	if sl == nil {
		return nil, domain.ErrSellerNotFound
	}

	crate, err := s.crateRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if crate == nil {
		return nil, domain.ErrCrateNotFound
	}

	last, err := s.movementRepo.GetLast(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if kind == domain.MovementKindReturn {
		if last == nil {
			return nil, domain.ErrNothingToReturn
		}
		if last.SellerCode != sl.Code {
			return nil, domain.ErrWrongHolder
		}
	}

	var from, to domain.CrateStatus
	switch kind {
	case domain.MovementKindCheckout:
		if crate.Status == domain.CrateStatusLoaned {
			return nil, domain.ErrAlreadyLoaned
		}
		from, to = domain.CrateStatusAvailable, domain.CrateStatusLoaned
	case domain.MovementKindReturn:
		if crate.Status == domain.CrateStatusAvailable {
			return nil, domain.ErrNotLoaned
		}
		from, to = domain.CrateStatusLoaned, domain.CrateStatusAvailable
	default:
		return nil, fmt.Errorf("unknown movement kind %q", kind)
	}

	m := &domain.Movement{
		SellerCode: sl.Code,
		Barcode:    barcode,
		Kind:       kind,
		OccurredOn: now,
	}

	// Append re-checks the prior status inside the transaction, so two
	// concurrent checkouts of the same crate cannot both commit.
	if err := s.movementRepo.Append(ctx, m, from, to); err != nil {
		return nil, err
	}

	logger.Debug("movement recorded", "seller", sl.Code, "barcode", barcode, "kind", kind)
	return m, nil
}

func (s *ledgerService) LostCrateCount(ctx context.Context, asOf time.Time) (int, error) {
	cutoff := asOf.Add(-s.lostThreshold)
	count, err := s.movementRepo.CountLost(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return count, nil
}

func (s *ledgerService) ActiveExposure(ctx context.Context) ([]domain.SellerExposure, error) {
	exposures, err := s.movementRepo.ActiveExposure(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return exposures, nil
}

func (s *ledgerService) OpenLoansFor(ctx context.Context, sellerCode string) ([]domain.OpenLoanSummary, []domain.OpenLoanDetail, error) {
	sl, err := s.sellerRepo.GetByCode(ctx, sellerCode)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if sl == nil {
		return nil, nil, domain.ErrSellerNotFound
	}

	summary, err := s.movementRepo.OpenLoanSummary(ctx, sl.Code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	detail, err := s.movementRepo.OpenLoanDetail(ctx, sl.Code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return summary, detail, nil
}

func (s *ledgerService) PurgeMovements(ctx context.Context) error {
	if err := s.movementRepo.PurgeAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	logger.Info("movement ledger purged, all crates reset to available")
	return nil
}

func (s *ledgerService) ReconcileStatuses(ctx context.Context) (int, error) {
	crates, err := s.crateRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	repaired := 0
	for _, crate := range crates {
		history, err := s.movementRepo.ListByBarcode(ctx, crate.Barcode)
		if err != nil {
			return repaired, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		derived := domain.StatusFromHistory(history)
		if derived == crate.Status {
			continue
		}
		logger.Warn("cached status drifted from ledger",
			"barcode", crate.Barcode, "cached", crate.Status, "derived", derived)
		if err := s.crateRepo.UpdateStatus(ctx, crate.Barcode, derived); err != nil {
			return repaired, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		repaired++
	}
	return repaired, nil
}
