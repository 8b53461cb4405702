package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

const (
	userHeader  = "X-User-ID"
	defaultUser = "default"

	maxUpcomingCount = 100
)

// userFromRequest returns the caller named in X-User-ID, or the default user.
func userFromRequest(r *http.Request) string {
	if u := sanitizeInput(r.Header.Get(userHeader)); u != "" {
		return u
	}
	return defaultUser
}

// parseYearMonth extracts year and month from query parameters.
// Missing values default to the month containing today; the month range
// itself is checked by the dashboard service.
func parseYearMonth(r *http.Request, today core.Date) (year, month int, err error) {
	year, month = today.Year(), today.Month()

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			return 0, 0, core.Invalid("year", fmt.Errorf("not a number: %q", v))
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			return 0, 0, core.Invalid("month", fmt.Errorf("%w: %q", core.ErrInvalidMonth, v))
		}
	}
	return year, month, nil
}

// parseCount reads the count query parameter, falling back to def.
func parseCount(r *http.Request, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("count"))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, core.Invalid("count", core.ErrInvalidCount)
	}
	if n > maxUpcomingCount {
		return 0, core.Invalid("count", fmt.Errorf("must be at most %d, got %d", maxUpcomingCount, n))
	}
	return n, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
