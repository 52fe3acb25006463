package postgres

import (
	"context"
	"database/sql"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
)

type crateRepository struct {
	db *sql.DB
}

func NewCrateRepository(db *sql.DB) repository.CrateRepository {
	return &crateRepository{db: db}
}

func (r *crateRepository) Create(ctx context.Context, c *domain.Crate) error {
	query := `INSERT INTO crates (barcode, size, color, condition, registered_on, current_status)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, c.Barcode, c.Size, c.Color, c.Condition, c.RegisteredOn, c.Status)
	return err
}

func (r *crateRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.Crate, error) {
	c := &domain.Crate{}
	query := `SELECT barcode, size, color, condition, registered_on, current_status FROM crates WHERE barcode = $1`
	err := r.db.QueryRowContext(ctx, query, barcode).Scan(&c.Barcode, &c.Size, &c.Color, &c.Condition, &c.RegisteredOn, &c.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *crateRepository) List(ctx context.Context) ([]domain.Crate, error) {
	query := `SELECT barcode, size, color, condition, registered_on, current_status FROM crates ORDER BY registered_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crates []domain.Crate
	for rows.Next() {
		var c domain.Crate
		if err := rows.Scan(&c.Barcode, &c.Size, &c.Color, &c.Condition, &c.RegisteredOn, &c.Status); err != nil {
			return nil, err
		}
		crates = append(crates, c)
	}
	return crates, rows.Err()
}

func (r *crateRepository) UpdateStatus(ctx context.Context, barcode string, status domain.CrateStatus) error {
	query := `UPDATE crates SET current_status = $1 WHERE barcode = $2`
	res, err := r.db.ExecContext(ctx, query, status, barcode)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCrateNotFound
	}
	return nil
}

func (r *crateRepository) FleetCounts(ctx context.Context) (total, available, loaned int, err error) {
	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE current_status = $1),
	                 COUNT(*) FILTER (WHERE current_status = $2)
	          FROM crates`
	err = r.db.QueryRowContext(ctx, query, domain.CrateStatusAvailable, domain.CrateStatusLoaned).
		Scan(&total, &available, &loaned)
	return total, available, loaned, err
}

func (r *crateRepository) AvailabilityBreakdown(ctx context.Context) ([]domain.AvailabilityRow, error) {
	query := `SELECT size, color,
	                 COUNT(*) FILTER (WHERE current_status = $1) AS available,
	                 COUNT(*) FILTER (WHERE current_status = $2) AS loaned,
	                 COUNT(*) AS total
	          FROM crates
	          GROUP BY size, color
	          ORDER BY size, color`
	rows, err := r.db.QueryContext(ctx, query, domain.CrateStatusAvailable, domain.CrateStatusLoaned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []domain.AvailabilityRow
	for rows.Next() {
		var row domain.AvailabilityRow
		if err := rows.Scan(&row.Size, &row.Color, &row.Available, &row.Loaned, &row.Total); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, row)
	}
	return breakdown, rows.Err()
}

func (r *crateRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM crates`)
	return err
}
