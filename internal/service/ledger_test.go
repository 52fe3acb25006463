package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const lostThreshold = 168 * time.Hour

func newLedgerFixture() (*MockMovementRepo, *MockCrateRepo, *MockSellerRepo, service.LedgerService) {
	movements := new(MockMovementRepo)
	crates := new(MockCrateRepo)
	sellers := new(MockSellerRepo)
	svc := service.NewLedgerService(movements, crates, sellers, lostThreshold)
	return movements, crates, sellers, svc
}

func TestLedgerService_RecordMovement_Checkout(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seller := &domain.Seller{Code: "S01", Name: "Rossi"}
	crate := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusAvailable}

	t.Run("Success", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(crate, nil)
		movements.On("GetLast", ctx, "C100").Return(nil, nil)
		movements.On("Append", ctx, mock.AnythingOfType("*domain.Movement"),
			domain.CrateStatusAvailable, domain.CrateStatusLoaned).Return(nil)

		m, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindCheckout, now)
		assert.NoError(t, err)
		assert.Equal(t, "S01", m.SellerCode)
		assert.Equal(t, domain.MovementKindCheckout, m.Kind)
		assert.Equal(t, now, m.OccurredOn)
		movements.AssertExpectations(t)
	})

	t.Run("SellerResolvedByName", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "Rossi").Return(nil, nil)
		sellers.On("GetByName", ctx, "Rossi").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(crate, nil)
		movements.On("GetLast", ctx, "C100").Return(nil, nil)
		movements.On("Append", ctx, mock.AnythingOfType("*domain.Movement"),
			domain.CrateStatusAvailable, domain.CrateStatusLoaned).Return(nil)

		m, err := svc.RecordMovement(ctx, "Rossi", "C100", domain.MovementKindCheckout, now)
		assert.NoError(t, err)
		assert.Equal(t, "S01", m.SellerCode)
	})

	t.Run("AlreadyLoaned", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		loaned := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusLoaned}
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(loaned, nil)
		movements.On("GetLast", ctx, "C100").Return(&domain.Movement{
			SellerCode: "S02", Kind: domain.MovementKindCheckout,
		}, nil)

		_, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindCheckout, now)
		assert.ErrorIs(t, err, domain.ErrAlreadyLoaned)
		movements.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ConcurrentCheckoutLosesOnAppend", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(crate, nil)
		movements.On("GetLast", ctx, "C100").Return(nil, nil)
		movements.On("Append", ctx, mock.AnythingOfType("*domain.Movement"),
			domain.CrateStatusAvailable, domain.CrateStatusLoaned).Return(domain.ErrAlreadyLoaned)

		_, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindCheckout, now)
		assert.ErrorIs(t, err, domain.ErrAlreadyLoaned)
	})
}

func TestLedgerService_RecordMovement_Return(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	seller := &domain.Seller{Code: "S01", Name: "Rossi"}

	t.Run("Success", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		loaned := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusLoaned}
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(loaned, nil)
		movements.On("GetLast", ctx, "C100").Return(&domain.Movement{
			SellerCode: "S01", Kind: domain.MovementKindCheckout,
		}, nil)
		movements.On("Append", ctx, mock.AnythingOfType("*domain.Movement"),
			domain.CrateStatusLoaned, domain.CrateStatusAvailable).Return(nil)

		m, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindReturn, now)
		assert.NoError(t, err)
		assert.Equal(t, domain.MovementKindReturn, m.Kind)
		movements.AssertExpectations(t)
	})

	t.Run("NothingToReturn", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		fresh := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusAvailable}
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(fresh, nil)
		movements.On("GetLast", ctx, "C100").Return(nil, nil)

		_, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindReturn, now)
		assert.ErrorIs(t, err, domain.ErrNothingToReturn)
	})

	t.Run("WrongHolder", func(t *testing.T) {
		movements, crates, sellers, svc := newLedgerFixture()
		loaned := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusLoaned}
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(loaned, nil)
		movements.On("GetLast", ctx, "C100").Return(&domain.Movement{
			SellerCode: "S02", Kind: domain.MovementKindCheckout,
		}, nil)

		_, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindReturn, now)
		assert.ErrorIs(t, err, domain.ErrWrongHolder)
	})

	t.Run("DoubleReturnRejected", func(t *testing.T) {
		// Checkout then return leaves the crate available with return history;
		// a second return by the same seller must be refused.
		movements, crates, sellers, svc := newLedgerFixture()
		returned := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusAvailable}
		sellers.On("GetByCode", ctx, "S01").Return(seller, nil)
		crates.On("GetByBarcode", ctx, "C100").Return(returned, nil)
		movements.On("GetLast", ctx, "C100").Return(&domain.Movement{
			SellerCode: "S01", Kind: domain.MovementKindReturn,
		}, nil)

		_, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindReturn, now)
		assert.ErrorIs(t, err, domain.ErrNotLoaned)
		movements.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLedgerService_RecordMovement_RuleOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("SellerNotFoundWinsOverCrate", func(t *testing.T) {
		_, _, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "ghost").Return(nil, nil)
		sellers.On("GetByName", ctx, "ghost").Return(nil, nil)

		_, err := svc.RecordMovement(ctx, "ghost", "no-such-crate", domain.MovementKindCheckout, now)
		assert.ErrorIs(t, err, domain.ErrSellerNotFound)
	})

	t.Run("CrateNotFound", func(t *testing.T) {
		_, crates, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "S01").Return(&domain.Seller{Code: "S01"}, nil)
		crates.On("GetByBarcode", ctx, "nope").Return(nil, nil)

		_, err := svc.RecordMovement(ctx, "S01", "nope", domain.MovementKindCheckout, now)
		assert.ErrorIs(t, err, domain.ErrCrateNotFound)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		_, _, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "S01").Return(nil, errors.New("connection refused"))

		_, err := svc.RecordMovement(ctx, "S01", "C100", domain.MovementKindCheckout, now)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestLedgerService_LostCrateCount(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

	t.Run("CutoffIsAsOfMinusThreshold", func(t *testing.T) {
		movements, _, _, svc := newLedgerFixture()
		movements.On("CountLost", ctx, asOf.Add(-lostThreshold)).Return(3, nil)

		count, err := svc.LostCrateCount(ctx, asOf)
		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		movements.AssertExpectations(t)
	})
}

func TestLedgerService_OpenLoansFor(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		movements, _, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "S01").Return(&domain.Seller{Code: "S01"}, nil)
		movements.On("OpenLoanSummary", ctx, "S01").Return([]domain.OpenLoanSummary{
			{Size: "L", Color: "green", Count: 2},
		}, nil)
		movements.On("OpenLoanDetail", ctx, "S01").Return([]domain.OpenLoanDetail{
			{Barcode: "C100"}, {Barcode: "C101"},
		}, nil)

		summary, detail, err := svc.OpenLoansFor(ctx, "S01")
		assert.NoError(t, err)
		assert.Len(t, summary, 1)
		assert.Len(t, detail, 2)
	})

	t.Run("UnknownSeller", func(t *testing.T) {
		_, _, sellers, svc := newLedgerFixture()
		sellers.On("GetByCode", ctx, "ghost").Return(nil, nil)

		_, _, err := svc.OpenLoansFor(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrSellerNotFound)
	})
}

func TestLedgerService_ReconcileStatuses(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("RepairsDriftedCache", func(t *testing.T) {
		movements, crates, _, svc := newLedgerFixture()
		crates.On("List", ctx).Return([]domain.Crate{
			{Barcode: "C100", Status: domain.CrateStatusAvailable}, // drifted
			{Barcode: "C101", Status: domain.CrateStatusAvailable}, // consistent
		}, nil)
		movements.On("ListByBarcode", ctx, "C100").Return([]domain.Movement{
			{Kind: domain.MovementKindCheckout, OccurredOn: base},
		}, nil)
		movements.On("ListByBarcode", ctx, "C101").Return([]domain.Movement{
			{Kind: domain.MovementKindCheckout, OccurredOn: base},
			{Kind: domain.MovementKindReturn, OccurredOn: base.Add(time.Hour)},
		}, nil)
		crates.On("UpdateStatus", ctx, "C100", domain.CrateStatusLoaned).Return(nil)

		repaired, err := svc.ReconcileStatuses(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, repaired)
		crates.AssertExpectations(t)
	})
}

func TestLedgerService_PurgeMovements(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		movements, _, _, svc := newLedgerFixture()
		movements.On("PurgeAll", ctx).Return(nil)

		assert.NoError(t, svc.PurgeMovements(ctx))
		movements.AssertExpectations(t)
	})
}
