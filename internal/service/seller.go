package service

import (
	"context"
	"errors"
	"fmt"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
)

var ErrSellerCodeTaken = errors.New("a seller with this code already exists")

type sellerService struct {
	sellerRepo repository.SellerRepository
}

func NewSellerService(sellerRepo repository.SellerRepository) SellerService {
	return &sellerService{sellerRepo: sellerRepo}
}

func (s *sellerService) Create(ctx context.Context, code, name string) (*domain.Seller, error) {
	existing, err := s.sellerRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if existing != nil {
		return nil, ErrSellerCodeTaken
	}

	seller := &domain.Seller{Code: code, Name: name}
	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return seller, nil
}

func (s *sellerService) List(ctx context.Context) ([]domain.Seller, error) {
	sellers, err := s.sellerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return sellers, nil
}

func (s *sellerService) Rename(ctx context.Context, code, name string) error {
	return s.sellerRepo.Rename(ctx, code, name)
}

// Delete removes the seller record only. Historical movements keep the
// orphaned code; reports join around it.
func (s *sellerService) Delete(ctx context.Context, code string) error {
	return s.sellerRepo.Delete(ctx, code)
}
