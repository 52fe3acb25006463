package service

import (
	"context"
	"fmt"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
)

type reportService struct {
	crateRepo    repository.CrateRepository
	movementRepo repository.MovementRepository
	ledger       LedgerService
}

func NewReportService(crateRepo repository.CrateRepository, movementRepo repository.MovementRepository, ledger LedgerService) ReportService {
	return &reportService{
		crateRepo:    crateRepo,
		movementRepo: movementRepo,
		ledger:       ledger,
	}
}

func (s *reportService) FleetSummary(ctx context.Context, asOf time.Time) (*domain.FleetSummary, error) {
	total, available, loaned, err := s.crateRepo.FleetCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	lost, err := s.ledger.LostCrateCount(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return &domain.FleetSummary{
		Total:     total,
		Available: available,
		Loaned:    loaned,
		Lost:      lost,
	}, nil
}

func (s *reportService) AvailabilityBreakdown(ctx context.Context) ([]domain.AvailabilityRow, error) {
	rows, err := s.crateRepo.AvailabilityBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *reportService) RecentMovements(ctx context.Context, limit int) ([]domain.MovementRecord, error) {
	records, err := s.movementRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return records, nil
}

func (s *reportService) MovementsWindow(ctx context.Context, from, to time.Time) ([]domain.MovementRecord, error) {
	records, err := s.movementRepo.ListWindow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return records, nil
}

func (s *reportService) SellerActivity(ctx context.Context, from, to time.Time) ([]domain.SellerActivity, error) {
	activity, err := s.movementRepo.SellerActivity(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return activity, nil
}

func (s *reportService) CrateHistory(ctx context.Context, barcode string, limit int) (*domain.Crate, []domain.CrateHistoryEntry, error) {
	crate, err := s.crateRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if crate == nil {
		return nil, nil, domain.ErrCrateNotFound
	}
	history, err := s.movementRepo.HistoryForCrate(ctx, barcode, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return crate, history, nil
}

func (s *reportService) ExposureRanking(ctx context.Context) ([]domain.SellerExposure, error) {
	return s.ledger.ActiveExposure(ctx)
}
