package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/session"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps domain and session errors to an HTTP status and a short
// user-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyCityName):
		return http.StatusBadRequest, "city name is required"
	case errors.Is(err, domain.ErrCityNotFound):
		return http.StatusNotFound, "city not found"
	case errors.Is(err, domain.ErrInvalidChoice):
		return http.StatusBadRequest, "invalid answer choice"
	case errors.Is(err, domain.ErrInvalidStep):
		return http.StatusBadRequest, "step must be at least 1"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "action not allowed in the current session state"
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, session.ErrVersionConflict):
		return http.StatusConflict, "session was modified concurrently, retry"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "path", r.URL.Path, "request_id", reqID, "error", err)
	} else {
		a.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg, RequestID: reqID})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
