package server

import (
	"net/http"

	"tableside/internal/domain"
)

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	o, err := h.orders.Place(r.Context(), req)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handlers) ListActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListActive(r.Context())
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) TableHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListForTable(r.Context(), r.PathValue("tableId"))
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	o, err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handlers) ServeOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Serve(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// AddItems places an order on the table's existing active session only;
// unlike PlaceOrder it refuses to open a new one.
func (h *Handlers) AddItems(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	sess, ok, err := h.ledger.GetActive(r.Context(), req.TableID)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	if !ok {
		writeError(w, h.lg, domain.Invalidf("no active session for this table"))
		return
	}
	req.SessionID = sess.ID
	if _, err := h.orders.Place(r.Context(), req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Items added successfully"})
}

func (h *Handlers) ResetTable(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkout.ResetTable(r.Context(), r.PathValue("tableId"))
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Table reset - session completed",
		"tableId":         result.TableID,
		"totalAmount":     result.TotalAmount,
		"ordersFinalized": result.OrdersFinalized,
	})
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Cancel(r.Context(), r.PathValue("orderId")); err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Order cancelled"})
}

func (h *Handlers) CancelTable(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.CancelTable(r.Context(), r.PathValue("tableId")); err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Table cancelled"})
}
