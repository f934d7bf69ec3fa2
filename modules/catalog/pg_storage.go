package catalog

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
//	CREATE TABLE fee_definitions (
//	    id          UUID PRIMARY KEY,
//	    name        TEXT NOT NULL,
//	    description TEXT NOT NULL DEFAULT '',
//	    amount      NUMERIC(18,2) NOT NULL,
//	    currency    TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE class_offerings (
//	    id                UUID PRIMARY KEY,
//	    school_id         UUID NOT NULL,
//	    teacher_id        UUID NOT NULL,
//	    name              TEXT NOT NULL,
//	    enrollment_fee_id UUID REFERENCES fee_definitions (id),
//	    tuition_fee_id    UUID REFERENCES fee_definitions (id),
//	    created_at        TIMESTAMPTZ NOT NULL
//	);
type PGStorage struct {
	db *pgxpool.Pool
}

// NewPGStorage creates a PostgreSQL-backed catalog storage.
func NewPGStorage(db *pgxpool.Pool) *PGStorage {
	return &PGStorage{db: db}
}

func (s *PGStorage) CreateFee(ctx context.Context, fee FeeDefinition) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO fee_definitions (id, name, description, amount, currency, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		fee.ID, fee.Name, fee.Description, fee.Amount, fee.Currency, fee.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create fee: %w", err)
	}
	return nil
}

func (s *PGStorage) FeeByID(ctx context.Context, id uuid.UUID) (FeeDefinition, error) {
	var fee FeeDefinition
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, amount, currency, created_at
		 FROM fee_definitions WHERE id = $1`,
		id,
	).Scan(&fee.ID, &fee.Name, &fee.Description, &fee.Amount, &fee.Currency, &fee.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return FeeDefinition{}, ErrFeeNotFound
		}
		return FeeDefinition{}, fmt.Errorf("fee by id: %w", err)
	}
	return fee, nil
}

func (s *PGStorage) UpdateFee(ctx context.Context, fee FeeDefinition) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE fee_definitions SET name = $2, description = $3, amount = $4, currency = $5
		 WHERE id = $1`,
		fee.ID, fee.Name, fee.Description, fee.Amount, fee.Currency,
	)
	if err != nil {
		return fmt.Errorf("update fee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFeeNotFound
	}
	return nil
}

func (s *PGStorage) ListFees(ctx context.Context) ([]FeeDefinition, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, amount, currency, created_at
		 FROM fee_definitions ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	defer rows.Close()

	var fees []FeeDefinition
	for rows.Next() {
		var fee FeeDefinition
		if err := rows.Scan(&fee.ID, &fee.Name, &fee.Description, &fee.Amount, &fee.Currency, &fee.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fee: %w", err)
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

func (s *PGStorage) CreateClass(ctx context.Context, class ClassOffering) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO class_offerings (id, school_id, teacher_id, name, enrollment_fee_id, tuition_fee_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		class.ID, class.SchoolID, class.TeacherID, class.Name, class.EnrollmentFeeID, class.TuitionFeeID, class.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

func (s *PGStorage) ClassByID(ctx context.Context, id uuid.UUID) (ClassOffering, error) {
	var class ClassOffering
	err := s.db.QueryRow(ctx,
		`SELECT id, school_id, teacher_id, name, enrollment_fee_id, tuition_fee_id, created_at
		 FROM class_offerings WHERE id = $1`,
		id,
	).Scan(&class.ID, &class.SchoolID, &class.TeacherID, &class.Name, &class.EnrollmentFeeID, &class.TuitionFeeID, &class.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return ClassOffering{}, ErrClassNotFound
		}
		return ClassOffering{}, fmt.Errorf("class by id: %w", err)
	}
	return class, nil
}
