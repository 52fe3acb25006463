package postgres_test

import (
	"context"
	"testing"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCrateRepository_GetByBarcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCrateRepository(db)
	ctx := context.Background()
	registered := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT barcode, size, color, condition, registered_on, current_status FROM crates").
			WithArgs("C100").
			WillReturnRows(sqlmock.NewRows([]string{"barcode", "size", "color", "condition", "registered_on", "current_status"}).
				AddRow("C100", "L", "green", "GOOD", registered, "AVAILABLE"))

		crate, err := repo.GetByBarcode(ctx, "C100")
		assert.NoError(t, err)
		assert.Equal(t, domain.CrateStatusAvailable, crate.Status)
		assert.Equal(t, domain.CrateConditionGood, crate.Condition)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT barcode, size, color, condition, registered_on, current_status FROM crates").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"barcode", "size", "color", "condition", "registered_on", "current_status"}))

		crate, err := repo.GetByBarcode(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, crate)
	})
}

func TestCrateRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCrateRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE crates SET current_status").
			WithArgs("LOANED", "C100").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "C100", domain.CrateStatusLoaned))
	})

	t.Run("UnknownBarcode", func(t *testing.T) {
		mock.ExpectExec("UPDATE crates SET current_status").
			WithArgs("LOANED", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "ghost", domain.CrateStatusLoaned)
		assert.ErrorIs(t, err, domain.ErrCrateNotFound)
	})
}

func TestCrateRepository_FleetCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCrateRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs("AVAILABLE", "LOANED").
			WillReturnRows(sqlmock.NewRows([]string{"total", "available", "loaned"}).AddRow(120, 90, 30))

		total, available, loaned, err := repo.FleetCounts(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 120, total)
		assert.Equal(t, 90, available)
		assert.Equal(t, 30, loaned)
	})
}

func TestCrateRepository_AvailabilityBreakdown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCrateRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT size, color").
			WithArgs("AVAILABLE", "LOANED").
			WillReturnRows(sqlmock.NewRows([]string{"size", "color", "available", "loaned", "total"}).
				AddRow("L", "green", 10, 5, 15).
				AddRow("M", "blue", 3, 0, 3))

		rows, err := repo.AvailabilityBreakdown(ctx)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, domain.AvailabilityRow{Size: "L", Color: "green", Available: 10, Loaned: 5, Total: 15}, rows[0])
	})
}
