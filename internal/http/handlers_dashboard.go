package http

import (
	"net/http"

	"fintrack/internal/services"
)

// upcomingResponse is the body of GET /api/upcoming.
type upcomingResponse struct {
	Count int                     `json:"count"`
	Items []services.UpcomingItem `json:"items"`
}

// handleDashboard serves the monthly widgets of the caller.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := userFromRequest(r)
	year, month, err := parseYearMonth(r, s.deps.Clock.Today())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dash, err := s.deps.Dashboard.Build(r.Context(), userID, year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// handleUpcoming serves the upcoming obligations feed of the caller.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	userID := userFromRequest(r)
	count, err := parseCount(r, s.deps.UpcomingCount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items, err := s.deps.Dashboard.Upcoming(r.Context(), userID, count)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []services.UpcomingItem{}
	}
	writeJSON(w, http.StatusOK, upcomingResponse{Count: len(items), Items: items})
}
