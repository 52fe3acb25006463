package postgres

import (
	"context"
	"database/sql"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
)

type movementRepository struct {
	db *sql.DB
}

func NewMovementRepository(db *sql.DB) repository.MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Append(ctx context.Context, m *domain.Movement, from, to domain.CrateStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO movements (seller_code, barcode, kind, occurred_on) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, insert, m.SellerCode, m.Barcode, m.Kind, m.OccurredOn).Scan(&m.ID); err != nil {
		return err
	}

	// Compare-and-set on the prior status. If a concurrent request already
	// flipped the crate, zero rows match and the whole unit rolls back.
	update := `UPDATE crates SET current_status = $1 WHERE barcode = $2 AND current_status = $3`
	res, err := tx.ExecContext(ctx, update, to, m.Barcode, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if m.Kind == domain.MovementKindCheckout {
			return domain.ErrAlreadyLoaned
		}
		return domain.ErrNotLoaned
	}

	return tx.Commit()
}

func (r *movementRepository) GetLast(ctx context.Context, barcode string) (*domain.Movement, error) {
	m := &domain.Movement{}
	query := `SELECT id, seller_code, barcode, kind, occurred_on FROM movements
	          WHERE barcode = $1 ORDER BY occurred_on DESC, id DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, barcode).Scan(&m.ID, &m.SellerCode, &m.Barcode, &m.Kind, &m.OccurredOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *movementRepository) ListByBarcode(ctx context.Context, barcode string) ([]domain.Movement, error) {
	query := `SELECT id, seller_code, barcode, kind, occurred_on FROM movements
	          WHERE barcode = $1 ORDER BY occurred_on ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, barcode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		var m domain.Movement
		if err := rows.Scan(&m.ID, &m.SellerCode, &m.Barcode, &m.Kind, &m.OccurredOn); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *movementRepository) Recent(ctx context.Context, limit int) ([]domain.MovementRecord, error) {
	query := `SELECT m.occurred_on, COALESCE(s.name, m.seller_code), m.kind, m.barcode
	          FROM movements m
	          LEFT JOIN sellers s ON m.seller_code = s.code
	          ORDER BY m.occurred_on DESC
	          LIMIT $1`
	return r.queryRecords(ctx, query, limit)
}

func (r *movementRepository) ListWindow(ctx context.Context, from, to time.Time) ([]domain.MovementRecord, error) {
	query := `SELECT m.occurred_on, COALESCE(s.name, m.seller_code), m.kind, m.barcode
	          FROM movements m
	          LEFT JOIN sellers s ON m.seller_code = s.code
	          WHERE m.occurred_on BETWEEN $1 AND $2
	          ORDER BY m.occurred_on DESC`
	return r.queryRecords(ctx, query, from, to)
}

func (r *movementRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]domain.MovementRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MovementRecord
	for rows.Next() {
		var rec domain.MovementRecord
		if err := rows.Scan(&rec.OccurredOn, &rec.SellerName, &rec.Kind, &rec.Barcode); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *movementRepository) HistoryForCrate(ctx context.Context, barcode string, limit int) ([]domain.CrateHistoryEntry, error) {
	query := `SELECT m.occurred_on, COALESCE(s.name, m.seller_code), m.kind
	          FROM movements m
	          LEFT JOIN sellers s ON m.seller_code = s.code
	          WHERE m.barcode = $1
	          ORDER BY m.occurred_on DESC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, barcode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CrateHistoryEntry
	for rows.Next() {
		var e domain.CrateHistoryEntry
		if err := rows.Scan(&e.OccurredOn, &e.SellerName, &e.Kind); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountLost implements the literal lost-crate rule: checkout older than the
// cutoff, cached status still loaned, and no return movement for the barcode
// anywhere in the ledger. A crate that cycled through an earlier loan and
// return is never counted, even when its current loan has aged out.
func (r *movementRepository) CountLost(ctx context.Context, cutoff time.Time) (int, error) {
	query := `SELECT COUNT(*)
	          FROM movements m
	          JOIN crates c ON m.barcode = c.barcode
	          WHERE m.kind = $1 AND m.occurred_on < $2 AND c.current_status = $3
	          AND NOT EXISTS (
	              SELECT 1 FROM movements m2 WHERE m2.barcode = m.barcode AND m2.kind = $4
	          )`
	var count int
	err := r.db.QueryRowContext(ctx, query,
		domain.MovementKindCheckout, cutoff, domain.CrateStatusLoaned, domain.MovementKindReturn).
		Scan(&count)
	return count, err
}

func (r *movementRepository) ActiveExposure(ctx context.Context) ([]domain.SellerExposure, error) {
	// Movements whose seller was deleted keep counting under the bare code.
	query := `SELECT COALESCE(s.name, m.seller_code) AS seller_name,
	                 SUM(CASE WHEN m.kind = $1 THEN 1 ELSE 0 END) -
	                 SUM(CASE WHEN m.kind = $2 THEN 1 ELSE 0 END) AS active_loans
	          FROM movements m
	          LEFT JOIN sellers s ON m.seller_code = s.code
	          GROUP BY COALESCE(s.name, m.seller_code)
	          ORDER BY active_loans DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.MovementKindCheckout, domain.MovementKindReturn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exposures []domain.SellerExposure
	for rows.Next() {
		var e domain.SellerExposure
		if err := rows.Scan(&e.SellerName, &e.ActiveLoans); err != nil {
			return nil, err
		}
		exposures = append(exposures, e)
	}
	return exposures, rows.Err()
}

func (r *movementRepository) SellerActivity(ctx context.Context, from, to time.Time) ([]domain.SellerActivity, error) {
	query := `SELECT COALESCE(s.name, m.seller_code) AS seller_name,
	                 SUM(CASE WHEN m.kind = $1 THEN 1 ELSE 0 END) AS checkouts,
	                 SUM(CASE WHEN m.kind = $2 THEN 1 ELSE 0 END) AS returns
	          FROM movements m
	          LEFT JOIN sellers s ON m.seller_code = s.code
	          WHERE m.occurred_on BETWEEN $3 AND $4
	          GROUP BY COALESCE(s.name, m.seller_code)
	          ORDER BY seller_name`
	rows, err := r.db.QueryContext(ctx, query, domain.MovementKindCheckout, domain.MovementKindReturn, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activity []domain.SellerActivity
	for rows.Next() {
		var a domain.SellerActivity
		if err := rows.Scan(&a.SellerName, &a.Checkouts, &a.Returns); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

func (r *movementRepository) OpenLoanSummary(ctx context.Context, sellerCode string) ([]domain.OpenLoanSummary, error) {
	query := `SELECT c.size, c.color, COUNT(*)
	          FROM crates c
	          JOIN movements m ON c.barcode = m.barcode
	          WHERE m.seller_code = $1 AND m.kind = $2 AND c.current_status = $3
	          AND NOT EXISTS (
	              SELECT 1 FROM movements m2
	              WHERE m2.barcode = m.barcode AND m2.kind = $4 AND m2.occurred_on > m.occurred_on
	          )
	          GROUP BY c.size, c.color
	          ORDER BY c.size, c.color`
	rows, err := r.db.QueryContext(ctx, query,
		sellerCode, domain.MovementKindCheckout, domain.CrateStatusLoaned, domain.MovementKindReturn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []domain.OpenLoanSummary
	for rows.Next() {
		var s domain.OpenLoanSummary
		if err := rows.Scan(&s.Size, &s.Color, &s.Count); err != nil {
			return nil, err
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}

func (r *movementRepository) OpenLoanDetail(ctx context.Context, sellerCode string) ([]domain.OpenLoanDetail, error) {
	query := `SELECT c.barcode, c.size, c.color, m.occurred_on
	          FROM crates c
	          JOIN movements m ON c.barcode = m.barcode
	          WHERE m.seller_code = $1 AND m.kind = $2 AND c.current_status = $3
	          AND NOT EXISTS (
	              SELECT 1 FROM movements m2
	              WHERE m2.barcode = m.barcode AND m2.kind = $4 AND m2.occurred_on > m.occurred_on
	          )
	          ORDER BY m.occurred_on DESC`
	rows, err := r.db.QueryContext(ctx, query,
		sellerCode, domain.MovementKindCheckout, domain.CrateStatusLoaned, domain.MovementKindReturn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.OpenLoanDetail
	for rows.Next() {
		var d domain.OpenLoanDetail
		if err := rows.Scan(&d.Barcode, &d.Size, &d.Color, &d.CheckedOutOn); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *movementRepository) PurgeAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movements`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE crates SET current_status = $1`, domain.CrateStatusAvailable); err != nil {
		return err
	}
	return tx.Commit()
}
