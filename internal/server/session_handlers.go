package server

import (
	"net/http"

	"tableside/internal/domain"
)

// OpenSession is the explicit session-open request. Placing an order
// does the same resolution implicitly.
func (h *Handlers) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.lg, err)
		return
	}
	if req.TableID == "" {
		writeError(w, h.lg, domain.Invalidf("table ID required"))
		return
	}
	sess, created, err := h.ledger.GetOrCreate(r.Context(), req.TableID)
	if err != nil {
		writeError(w, h.lg, err)
		return
	}
	msg := "Existing session"
	if created {
		msg = "New session created"
	}
	writeJSON(w, http.StatusOK, domain.OpenSessionResponse{SessionID: sess.ID, Message: msg})
}
