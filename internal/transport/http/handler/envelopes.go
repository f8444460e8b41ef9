package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harmonyhub/portal-api/internal/domain"
)

// StatusEnvelope is the generic {ok,error} response wrapper.
type StatusEnvelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, StatusEnvelope{Error: msg})
}

// httpError maps a service error onto the wire. Sentinel discrimination
// happens here once, so handlers never pick status codes themselves.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrSpam):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "Invalid verification code.")
	case errors.Is(err, domain.ErrCodeExpired):
		writeError(w, http.StatusBadRequest, "Verification code expired. Please register again.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "No pending verification for this email.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrUnconfigured):
		writeError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// decodeBody parses a JSON body into a loose map, tolerating empty and
// malformed bodies the way the legacy front-ends require: garbage in, empty
// map out, and let validation produce the real error message.
func decodeBody(r *http.Request) map[string]any {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}
