package server

import (
	"net/http"

	"tableside/internal/domain"
)

// ListMenu is public and filters to available items; an admin bearer
// token also sees unavailable ones.
func (h *Handlers) ListMenu(w http.ResponseWriter, r *http.Request) {
	includeUnavailable := false
	if id, err := h.guard.Authorize(bearerToken(r)); err == nil && id.Role == domain.RoleAdmin {
		includeUnavailable = true
	}
	items, err := h.menu.List(r.Context(), includeUnavailable)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	item, err := h.menu.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	item, err := h.menu.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.menu.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Item deleted"})
}
