package postgres

import (
	"context"
	"database/sql"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
)

type sellerRepository struct {
	db *sql.DB
}

func NewSellerRepository(db *sql.DB) repository.SellerRepository {
	return &sellerRepository{db: db}
}

func (r *sellerRepository) Create(ctx context.Context, s *domain.Seller) error {
	query := `INSERT INTO sellers (code, name) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, s.Code, s.Name)
	return err
}

func (r *sellerRepository) GetByCode(ctx context.Context, code string) (*domain.Seller, error) {
	s := &domain.Seller{}
	query := `SELECT code, name FROM sellers WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&s.Code, &s.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sellerRepository) GetByName(ctx context.Context, name string) (*domain.Seller, error) {
	s := &domain.Seller{}
	query := `SELECT code, name FROM sellers WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.Code, &s.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sellerRepository) List(ctx context.Context) ([]domain.Seller, error) {
	query := `SELECT code, name FROM sellers ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []domain.Seller
	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.Code, &s.Name); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *sellerRepository) Rename(ctx context.Context, code, name string) error {
	query := `UPDATE sellers SET name = $1 WHERE code = $2`
	res, err := r.db.ExecContext(ctx, query, name, code)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSellerNotFound
	}
	return nil
}

func (r *sellerRepository) Delete(ctx context.Context, code string) error {
	query := `DELETE FROM sellers WHERE code = $1`
	res, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSellerNotFound
	}
	return nil
}
