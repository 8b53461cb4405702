package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Default(log.ComponentHTTP).Error("Failed to encode response", log.FieldError, err)
	}
}

// writeError writes a JSON error. err is only echoed for client errors.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	resp := errorResponse{Error: msg, RequestID: middleware.GetReqID(r.Context())}
	if err != nil && status < http.StatusInternalServerError {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case core.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest:
		writeError(w, r, status, "invalid request body", err)
	case http.StatusUnprocessableEntity:
		writeError(w, r, status, "validation failed", err)
	case http.StatusNotFound:
		writeError(w, r, status, "record not found", err)
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldPath, r.URL.Path, log.FieldUserID, userFromRequest(r), log.FieldError, err)
		writeError(w, r, status, "internal error", err)
	}
}
