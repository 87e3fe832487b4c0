// Package repository defines the persistence-backend contract the
// lifecycle engine is written against. Two implementations exist:
// postgres (durable) and memory (test double / no-database mode). The
// core never branches on which one is active.
package repository

import (
	"context"
	"time"

	"tableside/internal/domain"
)

type Sessions interface {
	// ActiveByTable returns the table's active session, if any. An
	// unknown table id is (Session{}, false, nil), never an error.
	ActiveByTable(ctx context.Context, tableID string) (domain.Session, bool, error)
	Create(ctx context.Context, s domain.Session) error
	// Complete transitions the session to completed, stamping endedAt
	// and, when non-nil, the accumulated total.
	Complete(ctx context.Context, id string, endedAt time.Time, total *float64) error
}

type Orders interface {
	Create(ctx context.Context, o domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, bool, error)
	// ListActive returns orders in a live status whose session is still
	// active, oldest first.
	ListActive(ctx context.Context) ([]domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
	// ListByTable returns every order for the table regardless of
	// session, oldest first.
	ListByTable(ctx context.Context, tableID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (domain.Order, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteUnservedByTable(ctx context.Context, tableID string) (int, error)
	// FinalizeTable forces every non-served order of the table to
	// served, returning how many changed.
	FinalizeTable(ctx context.Context, tableID string, at time.Time) (int, error)
}

type Menu interface {
	List(ctx context.Context, onlyAvailable bool) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (domain.MenuItem, bool, error)
	Create(ctx context.Context, m domain.MenuItem) error
	Update(ctx context.Context, m domain.MenuItem) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Users interface {
	ByUsername(ctx context.Context, username string) (domain.User, bool, error)
	Create(ctx context.Context, u domain.User) error
}

// Store bundles the four repositories one backend provides.
type Store struct {
	Sessions Sessions
	Orders   Orders
	Menu     Menu
	Users    Users
}
