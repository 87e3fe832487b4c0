// Package memory is the in-process persistence backend: a mutex-guarded
// mirror of the postgres schema. It backs tests and the no-database
// deployment mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tableside/internal/domain"
	"tableside/internal/repository"
)

type state struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	orders   map[string]domain.Order
	menu     map[string]domain.MenuItem
	users    map[string]domain.User // keyed by username
}

func New() repository.Store {
	st := &state{
		sessions: make(map[string]domain.Session),
		orders:   make(map[string]domain.Order),
		menu:     make(map[string]domain.MenuItem),
		users:    make(map[string]domain.User),
	}
	return repository.Store{
		Sessions: &sessionRepo{st},
		Orders:   &orderRepo{st},
		Menu:     &menuRepo{st},
		Users:    &userRepo{st},
	}
}

type sessionRepo struct{ st *state }

func (r *sessionRepo) ActiveByTable(_ context.Context, tableID string) (domain.Session, bool, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, s := range r.st.sessions {
		if s.TableID == tableID && s.Status == domain.SessionActive {
			return s, true, nil
		}
	}
	return domain.Session{}, false, nil
}

func (r *sessionRepo) Create(_ context.Context, s domain.Session) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.sessions[s.ID] = s
	return nil
}

func (r *sessionRepo) Complete(_ context.Context, id string, endedAt time.Time, total *float64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.sessions[id]
	if !ok {
		return nil
	}
	s.Status = domain.SessionCompleted
	s.EndedAt = &endedAt
	s.TotalAmount = total
	r.st.sessions[id] = s
	return nil
}

type orderRepo struct{ st *state }

func (r *orderRepo) Create(_ context.Context, o domain.Order) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.orders[o.ID] = o
	return nil
}

func (r *orderRepo) Get(_ context.Context, id string) (domain.Order, bool, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	o, ok := r.st.orders[id]
	return o, ok, nil
}

func (r *orderRepo) ListActive(_ context.Context) ([]domain.Order, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var out []domain.Order
	for _, o := range r.st.orders {
		s, ok := r.st.sessions[o.SessionID]
		if ok && s.Status == domain.SessionActive {
			out = append(out, o)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *orderRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Order, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var out []domain.Order
	for _, o := range r.st.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *orderRepo) ListByTable(_ context.Context, tableID string) ([]domain.Order, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var out []domain.Order
	for _, o := range r.st.orders {
		if o.TableID == tableID {
			out = append(out, o)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *orderRepo) SetStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) (domain.Order, bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	o, ok := r.st.orders[id]
	if !ok {
		return domain.Order{}, false, nil
	}
	o.Status = status
	o.UpdatedAt = at
	r.st.orders[id] = o
	return o, true, nil
}

func (r *orderRepo) Delete(_ context.Context, id string) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.orders[id]; !ok {
		return false, nil
	}
	delete(r.st.orders, id)
	return true, nil
}

func (r *orderRepo) DeleteUnservedByTable(_ context.Context, tableID string) (int, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n := 0
	for id, o := range r.st.orders {
		if o.TableID == tableID && o.Status != domain.StatusServed {
			delete(r.st.orders, id)
			n++
		}
	}
	return n, nil
}

func (r *orderRepo) FinalizeTable(_ context.Context, tableID string, at time.Time) (int, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n := 0
	for id, o := range r.st.orders {
		if o.TableID == tableID && o.Status != domain.StatusServed {
			o.Status = domain.StatusServed
			o.UpdatedAt = at
			r.st.orders[id] = o
			n++
		}
	}
	return n, nil
}

type menuRepo struct{ st *state }

func (r *menuRepo) List(_ context.Context, onlyAvailable bool) ([]domain.MenuItem, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var out []domain.MenuItem
	for _, m := range r.st.menu {
		if onlyAvailable && !m.Available {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *menuRepo) Get(_ context.Context, id string) (domain.MenuItem, bool, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	m, ok := r.st.menu[id]
	return m, ok, nil
}

func (r *menuRepo) Create(_ context.Context, m domain.MenuItem) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.menu[m.ID] = m
	return nil
}

func (r *menuRepo) Update(_ context.Context, m domain.MenuItem) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.menu[m.ID]; !ok {
		return false, nil
	}
	r.st.menu[m.ID] = m
	return true, nil
}

func (r *menuRepo) Delete(_ context.Context, id string) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.menu[id]; !ok {
		return false, nil
	}
	delete(r.st.menu, id)
	return true, nil
}

type userRepo struct{ st *state }

func (r *userRepo) ByUsername(_ context.Context, username string) (domain.User, bool, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	u, ok := r.st.users[username]
	return u, ok, nil
}

func (r *userRepo) Create(_ context.Context, u domain.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.users[u.Username] = u
	return nil
}

func sortByCreation(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
