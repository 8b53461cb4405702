// Package clock supplies the reference "today" to the engine.
//
// Engine functions never read the system clock. A request captures
// Clock.Today() once and passes the resulting date everywhere.
package clock

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Clock returns the current calendar date.
type Clock interface {
	Today() core.Date
}

// System reads the wall clock in a fixed location.
type System struct {
	loc *time.Location
	now func() time.Time
}

// NewSystem returns a clock for loc; nil means UTC.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.UTC
	}
	return &System{loc: loc, now: time.Now}
}

// NewSystemFromName loads the IANA zone name ("" or "Local" allowed).
func NewSystemFromName(name string) (*System, error) {
	switch name {
	case "", "UTC":
		return NewSystem(time.UTC), nil
	case "Local":
		return NewSystem(time.Local), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return NewSystem(loc), nil
}

func (s *System) Today() core.Date {
	return core.DateOf(s.now().In(s.loc))
}

// Location returns the zone the clock reads dates in.
func (s *System) Location() *time.Location { return s.loc }

// Fixed always returns the same date.
type Fixed core.Date

func (f Fixed) Today() core.Date { return core.Date(f) }

// Func adapts a function to Clock.
type Func func() core.Date

func (f Func) Today() core.Date { return f() }
