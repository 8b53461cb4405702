package services

import (
	"fmt"

	"fintrack/internal/core"
)

// MarkAsPaid returns a copy of r with a paid status. Already paid records
// come back unchanged.
func MarkAsPaid(r core.Record) core.Record {
	r.Status = core.StatusPaid
	return r
}

// Postpone returns a copy of r moved to newDate. newDate must be strictly
// after today. The stored status is left as it is.
func Postpone(r core.Record, newDate, today core.Date) (core.Record, error) {
	if err := newDate.Validate(); err != nil {
		return core.Record{}, err
	}
	if !newDate.After(today) {
		return core.Record{}, core.Invalid("postpone date", fmt.Errorf("%w: %s is not after %s", core.ErrPostponeNotFuture, newDate, today))
	}
	r.Date = newDate
	return r, nil
}
