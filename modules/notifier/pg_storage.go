package notifier

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
//	CREATE TABLE notification_records (
//	    id          UUID PRIMARY KEY,
//	    user_id     UUID NOT NULL,
//	    title       TEXT NOT NULL,
//	    message     TEXT NOT NULL,
//	    entity_type TEXT NOT NULL DEFAULT '',
//	    entity_id   TEXT NOT NULL DEFAULT '',
//	    read        BOOLEAN NOT NULL DEFAULT FALSE,
//	    read_at     TIMESTAMPTZ,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX notification_records_user_idx
//	    ON notification_records (user_id, created_at DESC);
type PGStorage struct {
	db *pgxpool.Pool
}

// NewPGStorage creates a PostgreSQL-backed inbox storage.
func NewPGStorage(db *pgxpool.Pool) *PGStorage {
	return &PGStorage{db: db}
}

const recordColumns = `id, user_id, title, message, entity_type, entity_id, read, read_at, created_at`

func (s *PGStorage) Create(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO notification_records (`+recordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.UserID, r.Title, r.Message, r.Entity.Type, r.Entity.ID, r.Read, r.ReadAt, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification record: %w", err)
	}
	return nil
}

func (s *PGStorage) ByID(ctx context.Context, id uuid.UUID) (Record, error) {
	var r Record
	err := s.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM notification_records WHERE id = $1`, id,
	).Scan(&r.ID, &r.UserID, &r.Title, &r.Message, &r.Entity.Type, &r.Entity.ID, &r.Read, &r.ReadAt, &r.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, fmt.Errorf("notification record by id: %w", err)
	}
	return r, nil
}

func (s *PGStorage) ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+recordColumns+` FROM notification_records
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notification records: %w", err)
	}
	defer rows.Close()

	var list []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Message, &r.Entity.Type, &r.Entity.ID, &r.Read, &r.ReadAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification record: %w", err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notification records: %w", err)
	}
	return list, nil
}

func (s *PGStorage) MarkRead(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx,
		`UPDATE notification_records SET read = TRUE, read_at = NOW()
		 WHERE id = ANY($1) AND read = FALSE`, ids,
	)
	if err != nil {
		return fmt.Errorf("mark notification records read: %w", err)
	}
	return nil
}

func (s *PGStorage) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE notification_records SET read = TRUE, read_at = NOW()
		 WHERE user_id = $1 AND read = FALSE`, userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notification records read: %w", err)
	}
	return nil
}

func (s *PGStorage) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM notification_records WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete notification record: %w", err)
	}
	return nil
}

func (s *PGStorage) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notification_records WHERE user_id = $1 AND read = FALSE`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notification records: %w", err)
	}
	return count, nil
}
