package postgres_test

import (
	"context"
	"testing"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSellerRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSellerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT code, name FROM sellers WHERE code").
			WithArgs("S01").
			WillReturnRows(sqlmock.NewRows([]string{"code", "name"}).AddRow("S01", "Rossi"))

		seller, err := repo.GetByCode(ctx, "S01")
		assert.NoError(t, err)
		assert.Equal(t, "Rossi", seller.Name)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT code, name FROM sellers WHERE code").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"code", "name"}))

		seller, err := repo.GetByCode(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, seller)
	})
}

func TestSellerRepository_Rename(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSellerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE sellers SET name").
			WithArgs("Rossi Srl", "S01").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Rename(ctx, "S01", "Rossi Srl"))
	})

	t.Run("UnknownCode", func(t *testing.T) {
		mock.ExpectExec("UPDATE sellers SET name").
			WithArgs("Whoever", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Rename(ctx, "ghost", "Whoever"), domain.ErrSellerNotFound)
	})
}

func TestSellerRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSellerRepository(db)
	ctx := context.Background()

	t.Run("UnknownCode", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM sellers").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrSellerNotFound)
	})
}
