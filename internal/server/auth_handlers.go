package server

import (
	"net/http"

	"tableside/internal/domain"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	token, role, err := h.guard.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.LoginResponse{Token: token, Role: role})
}

// Signup serves both the self-service route and the admin-gated
// /register route; the router decides which guard applies.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	id, err := h.guard.Signup(r.Context(), req)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Account created successfully", "id": id})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		h.guard.Logout(token)
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}
