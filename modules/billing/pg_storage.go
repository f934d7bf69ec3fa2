package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/schoolkit/pkg/pg"
)

// PGStorage is a PostgreSQL implementation of the Storage interface.
//
// Expected schema:
//
//	CREATE TABLE invoices (
//	    id              BIGSERIAL PRIMARY KEY,
//	    student_id      UUID NOT NULL,
//	    fee_id          UUID NOT NULL,
//	    fee_name        TEXT NOT NULL,
//	    fee_description TEXT NOT NULL DEFAULT '',
//	    amount          NUMERIC(18,2) NOT NULL,
//	    currency        TEXT NOT NULL,
//	    status          TEXT NOT NULL,
//	    due_date        TIMESTAMPTZ,
//	    paid_at         TIMESTAMPTZ,
//	    created_at      TIMESTAMPTZ NOT NULL
//	);
type PGStorage struct {
	db *pgxpool.Pool
}

// NewPGStorage creates a PostgreSQL-backed invoice storage.
func NewPGStorage(db *pgxpool.Pool) *PGStorage {
	return &PGStorage{db: db}
}

const invoiceColumns = `id, student_id, fee_id, fee_name, fee_description, amount, currency, status, due_date, paid_at, created_at`

func (s *PGStorage) Create(ctx context.Context, inv *Invoice) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO invoices (student_id, fee_id, fee_name, fee_description, amount, currency, status, due_date, paid_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		inv.StudentID, inv.Fee.FeeID, inv.Fee.Name, inv.Fee.Description,
		inv.Fee.Amount, inv.Fee.Currency, inv.Status, inv.DueDate, inv.PaidAt, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (s *PGStorage) ByID(ctx context.Context, id int64) (Invoice, error) {
	var inv Invoice
	err := s.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id,
	).Scan(
		&inv.ID, &inv.StudentID, &inv.Fee.FeeID, &inv.Fee.Name, &inv.Fee.Description,
		&inv.Fee.Amount, &inv.Fee.Currency, &inv.Status, &inv.DueDate, &inv.PaidAt, &inv.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Invoice{}, ErrInvoiceNotFound
		}
		return Invoice{}, fmt.Errorf("invoice by id: %w", err)
	}
	return inv, nil
}

func (s *PGStorage) Update(ctx context.Context, inv Invoice) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE invoices SET status = $2, due_date = $3, paid_at = $4 WHERE id = $1`,
		inv.ID, inv.Status, inv.DueDate, inv.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (s *PGStorage) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM invoices WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete invoices: %w", err)
	}
	return nil
}

func (s *PGStorage) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Invoice, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE student_id = $1 ORDER BY id`, studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(
			&inv.ID, &inv.StudentID, &inv.Fee.FeeID, &inv.Fee.Name, &inv.Fee.Description,
			&inv.Fee.Amount, &inv.Fee.Currency, &inv.Status, &inv.DueDate, &inv.PaidAt, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
