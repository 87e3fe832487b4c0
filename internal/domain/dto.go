package domain

type PlaceOrderRequest struct {
	TableID   string      `json:"tableId"`
	Items     []OrderItem `json:"items"`
	SessionID string      `json:"sessionId,omitempty"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

type OpenSessionRequest struct {
	TableID string `json:"tableId"`
}

type OpenSessionResponse struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type ResetTableResult struct {
	TableID         string  `json:"tableId"`
	TotalAmount     float64 `json:"totalAmount"`
	OrdersFinalized int     `json:"ordersFinalized"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateMenuItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// UpdateMenuItemRequest carries a partial update; nil fields are left
// untouched.
type UpdateMenuItemRequest struct {
	Name      *string  `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Available *bool    `json:"available,omitempty"`
}
