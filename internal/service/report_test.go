package service_test

import (
	"context"
	"testing"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestReportService_FleetSummary(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

	t.Run("CombinesCountsAndLost", func(t *testing.T) {
		movements, crates, _, ledger := newLedgerFixture()
		svc := service.NewReportService(crates, movements, ledger)

		crates.On("FleetCounts", ctx).Return(120, 90, 30, nil)
		movements.On("CountLost", ctx, asOf.Add(-lostThreshold)).Return(4, nil)

		summary, err := svc.FleetSummary(ctx, asOf)
		assert.NoError(t, err)
		assert.Equal(t, &domain.FleetSummary{Total: 120, Available: 90, Loaned: 30, Lost: 4}, summary)
	})
}

func TestReportService_CrateHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownCrate", func(t *testing.T) {
		movements, crates, _, ledger := newLedgerFixture()
		svc := service.NewReportService(crates, movements, ledger)
		crates.On("GetByBarcode", ctx, "ghost").Return(nil, nil)

		_, _, err := svc.CrateHistory(ctx, "ghost", 50)
		assert.ErrorIs(t, err, domain.ErrCrateNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		movements, crates, _, ledger := newLedgerFixture()
		svc := service.NewReportService(crates, movements, ledger)
		crate := &domain.Crate{Barcode: "C100", Status: domain.CrateStatusLoaned}
		crates.On("GetByBarcode", ctx, "C100").Return(crate, nil)
		movements.On("HistoryForCrate", ctx, "C100", 50).Return([]domain.CrateHistoryEntry{
			{SellerName: "Rossi", Kind: domain.MovementKindCheckout},
		}, nil)

		got, history, err := svc.CrateHistory(ctx, "C100", 50)
		assert.NoError(t, err)
		assert.Equal(t, crate, got)
		assert.Len(t, history, 1)
	})
}

func TestReportService_ExposureRanking(t *testing.T) {
	ctx := context.Background()

	t.Run("DelegatesToLedger", func(t *testing.T) {
		movements, crates, _, ledger := newLedgerFixture()
		svc := service.NewReportService(crates, movements, ledger)
		movements.On("ActiveExposure", ctx).Return([]domain.SellerExposure{
			{SellerName: "Rossi", ActiveLoans: 7},
			{SellerName: "Bianchi", ActiveLoans: 2},
		}, nil)

		exposures, err := svc.ExposureRanking(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "Rossi", exposures[0].SellerName)
		assert.Equal(t, 7, exposures[0].ActiveLoans)
	})
}
