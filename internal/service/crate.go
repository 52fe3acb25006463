package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
)

var ErrBarcodeTaken = errors.New("a crate with this barcode already exists")

type crateService struct {
	crateRepo repository.CrateRepository
}

func NewCrateService(crateRepo repository.CrateRepository) CrateService {
	return &crateService{crateRepo: crateRepo}
}

func (s *crateService) Register(ctx context.Context, barcode, size, color string, condition domain.CrateCondition, now time.Time) (*domain.Crate, error) {
	existing, err := s.crateRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if existing != nil {
		return nil, ErrBarcodeTaken
	}

	crate := &domain.Crate{
		Barcode:      barcode,
		Size:         size,
		Color:        color,
		Condition:    condition,
		RegisteredOn: now,
		Status:       domain.CrateStatusAvailable,
	}
	if err := s.crateRepo.Create(ctx, crate); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return crate, nil
}

func (s *crateService) Get(ctx context.Context, barcode string) (*domain.Crate, error) {
	crate, err := s.crateRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if crate == nil {
		return nil, domain.ErrCrateNotFound
	}
	return crate, nil
}

func (s *crateService) List(ctx context.Context) ([]domain.Crate, error) {
	crates, err := s.crateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return crates, nil
}

func (s *crateService) PurgeCrates(ctx context.Context) error {
	if err := s.crateRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
