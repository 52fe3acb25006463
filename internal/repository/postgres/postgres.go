package postgres

import (
	"database/sql"

	"crateledger-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.SellerRepository
	repository.CrateRepository
	repository.MovementRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		SellerRepository:   NewSellerRepository(db),
		CrateRepository:    NewCrateRepository(db),
		MovementRepository: NewMovementRepository(db),
		UserRepository:     NewUserRepository(db),
	}
}
