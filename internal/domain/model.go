package domain

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
	StatusServed    OrderStatus = "served"
)

// ValidTarget reports whether s may be set by a status update.
// Pending is an initial state only, never a target.
func (s OrderStatus) ValidTarget() bool {
	return s == StatusPreparing || s == StatusCompleted || s == StatusServed
}

// Session is one dining party's occupancy of a table, from first order
// (or explicit open) to checkout. At most one active session exists per
// table at any time. Completed sessions are kept, never deleted.
type Session struct {
	ID          string        `json:"id"`
	TableID     string        `json:"tableId"`
	Status      SessionStatus `json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	EndedAt     *time.Time    `json:"endedAt,omitempty"`
	TotalAmount *float64      `json:"totalAmount,omitempty"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order belongs to exactly one session. TableID is a denormalized copy
// of the session's table at creation time. TotalAmount is computed once
// at creation and never recomputed.
type Order struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"sessionId"`
	TableID     string      `json:"tableId"`
	Items       []OrderItem `json:"items"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type MenuItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Available bool    `json:"available"`
}

const (
	RoleAdmin   = "admin"
	RoleKitchen = "kitchen"
	RoleCounter = "counter"
	RoleWaiter  = "waiter"
)

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
