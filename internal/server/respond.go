package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tableside/internal/domain"
	"tableside/internal/logger"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem renders the single error format (simplified RFC7807).
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// writeError maps the domain taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a backend failure: logged, 500, not retried.
func writeError(w http.ResponseWriter, lg *logger.Logger, err error) {
	var ve *domain.ValidationError
	var nfe *domain.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "validation_error", ve.Msg)
	case errors.As(err, &nfe):
		writeProblem(w, http.StatusNotFound, "not_found", nfe.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		writeProblem(w, http.StatusUnauthorized, "access_denied", "Access denied")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
	default:
		lg.Error("request_failed", err, nil)
		writeProblem(w, http.StatusInternalServerError, "backend_error", err.Error())
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalidf("invalid JSON body")
	}
	return nil
}
