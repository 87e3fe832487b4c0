// Package session is the ledger of table sessions: per table, at most
// one active session at a time.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableside/internal/domain"
	"tableside/internal/repository"
)

type Ledger struct {
	repo repository.Sessions

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLedger(repo repository.Sessions) *Ledger {
	return &Ledger{repo: repo, locks: make(map[string]*sync.Mutex)}
}

// LockTable acquires the table's mutex and returns its unlock func.
// The checkout coordinator holds it across bill-sum, complete and
// finalize so all three see one session snapshot; GetOrCreate takes it
// internally, so concurrent placements queue behind a running checkout.
func (l *Ledger) LockTable(tableID string) func() {
	l.mu.Lock()
	lk, ok := l.locks[tableID]
	if !ok {
		lk = &sync.Mutex{}
		l.locks[tableID] = lk
	}
	l.mu.Unlock()
	lk.Lock()
	return lk.Unlock
}

// GetOrCreate returns the table's active session, creating one when
// none exists. The created flag reports which happened. Two concurrent
// calls for the same table resolve to the same session.
func (l *Ledger) GetOrCreate(ctx context.Context, tableID string) (domain.Session, bool, error) {
	unlock := l.LockTable(tableID)
	defer unlock()

	s, ok, err := l.repo.ActiveByTable(ctx, tableID)
	if err != nil {
		return domain.Session{}, false, err
	}
	if ok {
		return s, false, nil
	}

	s = domain.Session{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Status:    domain.SessionActive,
		StartedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, s); err != nil {
		return domain.Session{}, false, fmt.Errorf("failed to create session: %w", err)
	}
	return s, true, nil
}

// GetActive is the read-only lookup. Unknown tables are not an error.
func (l *Ledger) GetActive(ctx context.Context, tableID string) (domain.Session, bool, error) {
	return l.repo.ActiveByTable(ctx, tableID)
}

// Complete transitions the table's active session to completed,
// stamping end time and, when non-nil, the bill total. No-op when the
// table has no active session; returns the completed session id.
// Callers needing atomicity with surrounding steps hold LockTable.
func (l *Ledger) Complete(ctx context.Context, tableID string, total *float64) (string, bool, error) {
	s, ok, err := l.repo.ActiveByTable(ctx, tableID)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	if err := l.repo.Complete(ctx, s.ID, time.Now().UTC(), total); err != nil {
		return "", false, fmt.Errorf("failed to complete session: %w", err)
	}
	return s.ID, true, nil
}
