package enrollment

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
//	CREATE TABLE enrollments (
//	    id         UUID PRIMARY KEY,
//	    student_id UUID NOT NULL,
//	    class_id   UUID NOT NULL,
//	    status     TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE UNIQUE INDEX enrollments_pending_uq
//	    ON enrollments (student_id, class_id) WHERE status = 'pending';
type PGStorage struct {
	db *pgxpool.Pool
}

// NewPGStorage creates a PostgreSQL-backed enrollment storage.
func NewPGStorage(db *pgxpool.Pool) *PGStorage {
	return &PGStorage{db: db}
}

func (s *PGStorage) Create(ctx context.Context, e Enrollment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO enrollments (id, student_id, class_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.StudentID, e.ClassID, e.Status, e.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadySubmitted
		}
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func (s *PGStorage) ByID(ctx context.Context, id uuid.UUID) (Enrollment, error) {
	var e Enrollment
	err := s.db.QueryRow(ctx,
		`SELECT id, student_id, class_id, status, created_at FROM enrollments WHERE id = $1`, id,
	).Scan(&e.ID, &e.StudentID, &e.ClassID, &e.Status, &e.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Enrollment{}, ErrNotFound
		}
		return Enrollment{}, fmt.Errorf("enrollment by id: %w", err)
	}
	return e, nil
}

func (s *PGStorage) HasPending(ctx context.Context, studentID, classID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM enrollments
		     WHERE student_id = $1 AND class_id = $2 AND status = 'pending'
		 )`,
		studentID, classID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has pending enrollment: %w", err)
	}
	return exists, nil
}

// ClaimPending relies on the conditional UPDATE's affected-row count:
// only one concurrent caller observes RowsAffected == 1.
func (s *PGStorage) ClaimPending(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE enrollments SET status = 'approved' WHERE id = $1 AND status = 'pending'`, id,
	)
	if err != nil {
		return false, fmt.Errorf("claim pending enrollment: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	// Distinguish "already claimed" from "does not exist".
	if _, err := s.ByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (s *PGStorage) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE enrollments SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("set enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
