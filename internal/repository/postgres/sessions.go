package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tableside/internal/domain"
)

type SessionRepo struct {
	db *sql.DB
}

func (r *SessionRepo) ActiveByTable(ctx context.Context, tableID string) (domain.Session, bool, error) {
	var s domain.Session
	var status string
	err := r.db.QueryRowContext(ctx, `
SELECT id, table_id, status, started_at, ended_at, total_amount
FROM customer_sessions
WHERE table_id = $1 AND status = 'active'
`, tableID).Scan(&s.ID, &s.TableID, &status, &s.StartedAt, &s.EndedAt, &s.TotalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("failed to query active session: %w", err)
	}
	s.Status = domain.SessionStatus(status)
	return s, true, nil
}

func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO customer_sessions (id, table_id, status, started_at)
VALUES ($1, $2, $3, $4)
`, s.ID, s.TableID, string(s.Status), s.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Complete(ctx context.Context, id string, endedAt time.Time, total *float64) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE customer_sessions
SET status = 'completed', ended_at = $2, total_amount = $3
WHERE id = $1
`, id, endedAt, total)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}
