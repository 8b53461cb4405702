package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/core"
)

func (s *Server) handleRecordStatus(w http.ResponseWriter, r *http.Request) {
	userID := userFromRequest(r)
	recordID, err := recordIDParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	st, err := s.deps.Obligations.Status(r.Context(), userID, recordID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	userID := userFromRequest(r)
	recordID, err := recordIDParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	st, err := s.deps.Obligations.MarkPaid(r.Context(), userID, recordID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePostpone(w http.ResponseWriter, r *http.Request) {
	userID := userFromRequest(r)
	recordID, err := recordIDParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	newDate, err := parsePostponeDate(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	st, err := s.deps.Obligations.Postpone(r.Context(), userID, recordID, newDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func recordIDParam(r *http.Request) (string, error) {
	id := sanitizeInput(chi.URLParam(r, "id"))
	if id == "" {
		return "", core.Invalid("record id", core.ErrEmptyID)
	}
	return id, nil
}
