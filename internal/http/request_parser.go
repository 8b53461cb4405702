package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"fintrack/internal/core"
)

const maxBodyBytes = 1 << 16

// errBadRequest marks malformed request bodies; they map to 400.
var errBadRequest = errors.New("bad request")

// postponeRequest is the body of POST /api/records/{id}/postpone.
type postponeRequest struct {
	Date string `json:"date"`
}

// parsePostponeDate decodes a postpone body and returns its target date.
func parsePostponeDate(w http.ResponseWriter, r *http.Request) (core.Date, error) {
	var req postponeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return core.Date{}, err
	}
	if req.Date == "" {
		return core.Date{}, core.Invalid("date", fmt.Errorf("%w: missing", core.ErrInvalidDate))
	}
	return core.ParseDate(req.Date)
}

// decodeJSON reads a single JSON object, rejecting unknown fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", errBadRequest)
	}
	return nil
}
