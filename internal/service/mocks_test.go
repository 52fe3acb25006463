package service_test

import (
	"context"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockSellerRepo
type MockSellerRepo struct {
	mock.Mock
}

func (m *MockSellerRepo) Create(ctx context.Context, seller *domain.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}
func (m *MockSellerRepo) GetByCode(ctx context.Context, code string) (*domain.Seller, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}
func (m *MockSellerRepo) GetByName(ctx context.Context, name string) (*domain.Seller, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}
func (m *MockSellerRepo) List(ctx context.Context) ([]domain.Seller, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Seller), args.Error(1)
}
func (m *MockSellerRepo) Rename(ctx context.Context, code, name string) error {
	args := m.Called(ctx, code, name)
	return args.Error(0)
}
func (m *MockSellerRepo) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// MockCrateRepo
type MockCrateRepo struct {
	mock.Mock
}

func (m *MockCrateRepo) Create(ctx context.Context, crate *domain.Crate) error {
	args := m.Called(ctx, crate)
	return args.Error(0)
}
func (m *MockCrateRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Crate, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crate), args.Error(1)
}
func (m *MockCrateRepo) List(ctx context.Context) ([]domain.Crate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Crate), args.Error(1)
}
func (m *MockCrateRepo) UpdateStatus(ctx context.Context, barcode string, status domain.CrateStatus) error {
	args := m.Called(ctx, barcode, status)
	return args.Error(0)
}
func (m *MockCrateRepo) FleetCounts(ctx context.Context) (int, int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}
func (m *MockCrateRepo) AvailabilityBreakdown(ctx context.Context) ([]domain.AvailabilityRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AvailabilityRow), args.Error(1)
}
func (m *MockCrateRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMovementRepo
type MockMovementRepo struct {
	mock.Mock
}

func (m *MockMovementRepo) Append(ctx context.Context, mv *domain.Movement, from, to domain.CrateStatus) error {
	args := m.Called(ctx, mv, from, to)
	return args.Error(0)
}
func (m *MockMovementRepo) GetLast(ctx context.Context, barcode string) (*domain.Movement, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementRepo) ListByBarcode(ctx context.Context, barcode string) ([]domain.Movement, error) {
	args := m.Called(ctx, barcode)
	return args.Get(0).([]domain.Movement), args.Error(1)
}
func (m *MockMovementRepo) Recent(ctx context.Context, limit int) ([]domain.MovementRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.MovementRecord), args.Error(1)
}
func (m *MockMovementRepo) ListWindow(ctx context.Context, from, to time.Time) ([]domain.MovementRecord, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.MovementRecord), args.Error(1)
}
func (m *MockMovementRepo) HistoryForCrate(ctx context.Context, barcode string, limit int) ([]domain.CrateHistoryEntry, error) {
	args := m.Called(ctx, barcode, limit)
	return args.Get(0).([]domain.CrateHistoryEntry), args.Error(1)
}
func (m *MockMovementRepo) CountLost(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}
func (m *MockMovementRepo) ActiveExposure(ctx context.Context) ([]domain.SellerExposure, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SellerExposure), args.Error(1)
}
func (m *MockMovementRepo) SellerActivity(ctx context.Context, from, to time.Time) ([]domain.SellerActivity, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.SellerActivity), args.Error(1)
}
func (m *MockMovementRepo) OpenLoanSummary(ctx context.Context, sellerCode string) ([]domain.OpenLoanSummary, error) {
	args := m.Called(ctx, sellerCode)
	return args.Get(0).([]domain.OpenLoanSummary), args.Error(1)
}
func (m *MockMovementRepo) OpenLoanDetail(ctx context.Context, sellerCode string) ([]domain.OpenLoanDetail, error) {
	args := m.Called(ctx, sellerCode)
	return args.Get(0).([]domain.OpenLoanDetail), args.Error(1)
}
func (m *MockMovementRepo) PurgeAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePasswordHash(ctx context.Context, id int32, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, username, role string) (string, error) {
	args := m.Called(userID, username, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
