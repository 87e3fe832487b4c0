// Package server maps HTTP routes onto the lifecycle engine and hosts
// the websocket endpoint for real-time clients.
package server

import (
	"net/http"

	"tableside/internal/auth"
	"tableside/internal/broadcast"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/service/checkout"
	"tableside/internal/service/menu"
	"tableside/internal/service/order"
	"tableside/internal/service/session"
)

type Handlers struct {
	guard    *auth.Service
	orders   *order.Service
	checkout *checkout.Coordinator
	menu     *menu.Service
	ledger   *session.Ledger
	hub      *broadcast.Hub
	lg       *logger.Logger
}

func NewHandlers(guard *auth.Service, orders *order.Service, co *checkout.Coordinator, mn *menu.Service, ledger *session.Ledger, hub *broadcast.Hub, lg *logger.Logger) *Handlers {
	return &Handlers{guard: guard, orders: orders, checkout: co, menu: mn, ledger: ledger, hub: hub, lg: lg}
}

func (h *Handlers) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /register", h.requireRoles([]string{domain.RoleAdmin}, h.Signup))
	mux.HandleFunc("POST /logout", h.Logout)

	mux.HandleFunc("POST /customer-session", h.OpenSession)

	mux.HandleFunc("GET /menu", h.ListMenu)
	mux.HandleFunc("POST /menu", h.requireRoles([]string{domain.RoleAdmin}, h.CreateMenuItem))
	mux.HandleFunc("PATCH /menu/{id}", h.requireRoles([]string{domain.RoleAdmin}, h.UpdateMenuItem))
	mux.HandleFunc("DELETE /menu/{id}", h.requireRoles([]string{domain.RoleAdmin}, h.DeleteMenuItem))

	staff := []string{domain.RoleKitchen, domain.RoleCounter, domain.RoleWaiter}
	mux.HandleFunc("POST /orders", h.PlaceOrder)
	mux.HandleFunc("GET /orders", h.requireRoles(staff, h.ListActiveOrders))
	mux.HandleFunc("GET /orders/history/{tableId}", h.TableHistory)
	mux.HandleFunc("PATCH /orders/{id}", h.requireRoles([]string{domain.RoleKitchen}, h.UpdateOrderStatus))
	mux.HandleFunc("PATCH /orders/{id}/serve", h.requireRoles([]string{domain.RoleWaiter}, h.ServeOrder))
	mux.HandleFunc("POST /orders/add-items", h.requireRoles([]string{domain.RoleCounter}, h.AddItems))
	mux.HandleFunc("DELETE /orders/{tableId}", h.requireRoles([]string{domain.RoleCounter}, h.ResetTable))
	mux.HandleFunc("DELETE /orders/order/{orderId}", h.requireRoles([]string{domain.RoleCounter}, h.CancelOrder))
	mux.HandleFunc("DELETE /orders/table/{tableId}/cancel", h.requireRoles([]string{domain.RoleCounter}, h.CancelTable))

	mux.Handle("GET /ws", h.WSHandler())

	return cors(mux)
}
