package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day and no time zone.
//
// The zero value is the empty date. Values are only built through NewDate,
// DateOf and ParseDate, so the underlying instant is always UTC midnight and
// two dates compare equal exactly when year, month and day match.
type Date struct {
	t time.Time
}

// NewDate creates a new Date from year, month, day. Out-of-range values
// normalize the way time.Date does (Feb 30 becomes Mar 1 or 2).
func NewDate(year, month, day int) Date {
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, Invalid("date", fmt.Errorf("%w: %q", ErrInvalidDate, s))
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals; it panics on malformed input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) Year() int  { return d.t.Year() }
func (d Date) Month() int { return int(d.t.Month()) }
func (d Date) Day() int   { return d.t.Day() }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// InMonth reports whether d falls in the given calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonthsClamped moves d by n calendar months, clamping the day to the
// last valid day of the target month (Jan 31 + 1 month = Feb 28 or 29).
func (d Date) AddMonthsClamped(n int) Date {
	first := time.Date(d.Year(), time.Month(d.Month()+n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day()
	if last := DaysInMonth(first.Year(), int(first.Month())); day > last {
		day = last
	}
	return NewDate(first.Year(), int(first.Month()), day)
}

// AddYearsClamped moves d by n years; Feb 29 lands on Feb 28 in common years.
func (d Date) AddYearsClamped(n int) Date {
	return d.AddMonthsClamped(12 * n)
}

// DaysUntil returns the whole number of days from d to o (negative when o is earlier).
// Both values are UTC midnight, so the difference in seconds is a multiple of a day.
func (d Date) DaysUntil(o Date) int {
	return int((o.t.Unix() - d.t.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Time returns the date as a UTC midnight instant.
func (d Date) Time() time.Time { return d.t }

// Validate fails for the zero date.
func (d Date) Validate() error {
	if d.IsZero() {
		return Invalid("date", ErrInvalidDate)
	}
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer; dates are stored as YYYY-MM-DD text.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
