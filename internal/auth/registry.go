package auth

import "sync"

// Identity is the resolved login behind a bearer token.
type Identity struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// Registry maps opaque bearer tokens to identities. Entries live from
// login to logout; nothing is persisted and nothing expires, so a
// process restart invalidates every token. That is an operational
// property, not a bug.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Identity
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Identity)}
}

func (r *Registry) Insert(token string, id Identity) {
	r.mu.Lock()
	r.m[token] = id
	r.mu.Unlock()
}

func (r *Registry) Remove(token string) {
	r.mu.Lock()
	delete(r.m, token)
	r.mu.Unlock()
}

func (r *Registry) Lookup(token string) (Identity, bool) {
	r.mu.RLock()
	id, ok := r.m[token]
	r.mu.RUnlock()
	return id, ok
}
