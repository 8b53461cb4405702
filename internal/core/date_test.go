package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{}, false},
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && !IsValidation(err) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 00:30 in Rome is still the previous day in UTC.
	late := time.Date(2025, 3, 20, 0, 30, 0, 0, rome)
	if got := DateOf(late); !got.Equal(NewDate(2025, 3, 20)) {
		t.Fatalf("DateOf = %s, want 2025-03-20", got)
	}
	if got := DateOf(late.UTC()); !got.Equal(NewDate(2025, 3, 19)) {
		t.Fatalf("DateOf(UTC) = %s, want 2025-03-19", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 29 {
		t.Fatalf("unexpected parts: %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
	for _, bad := range []string{"", "2025-02-30", "20-01-01", "2025/01/01"} {
		if _, err := ParseDate(bad); !IsValidation(err) {
			t.Errorf("ParseDate(%q) expected validation error, got %v", bad, err)
		}
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"jan 31 leap", NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{"jan 31 common", NewDate(2025, 1, 31), 1, NewDate(2025, 2, 28)},
		{"jan 31 to mar", NewDate(2025, 1, 31), 2, NewDate(2025, 3, 31)},
		{"mar 31 to apr", NewDate(2025, 3, 31), 1, NewDate(2025, 4, 30)},
		{"dec to jan", NewDate(2024, 12, 15), 1, NewDate(2025, 1, 15)},
		{"backwards", NewDate(2025, 3, 31), -1, NewDate(2025, 2, 28)},
		{"many", NewDate(2024, 1, 31), 13, NewDate(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.AddMonthsClamped(tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonthsClamped(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestAddYearsClamped(t *testing.T) {
	if got := NewDate(2024, 2, 29).AddYearsClamped(1); !got.Equal(NewDate(2025, 2, 28)) {
		t.Fatalf("got %s, want 2025-02-28", got)
	}
	if got := NewDate(2024, 2, 29).AddYearsClamped(4); !got.Equal(NewDate(2028, 2, 29)) {
		t.Fatalf("got %s, want 2028-02-29", got)
	}
}

func TestDaysUntil(t *testing.T) {
	today := NewDate(2025, 3, 20)
	if got := today.DaysUntil(NewDate(2025, 4, 15)); got != 26 {
		t.Fatalf("DaysUntil = %d, want 26", got)
	}
	if got := today.DaysUntil(NewDate(2025, 3, 18)); got != -2 {
		t.Fatalf("DaysUntil = %d, want -2", got)
	}
	if got := today.DaysUntil(today); got != 0 {
		t.Fatalf("DaysUntil = %d, want 0", got)
	}
}

func TestDaysUntil_Centuries(t *testing.T) {
	tests := []struct {
		from, to Date
		want     int
	}{
		{NewDate(2026, 1, 1), NewDate(2425, 1, 1), 145732},
		{NewDate(2026, 1, 1), NewDate(1700, 3, 1), -119010},
		{NewDate(2024, 2, 28), NewDate(2024, 3, 1), 2},
	}
	for _, tt := range tests {
		if got := tt.from.DaysUntil(tt.to); got != tt.want {
			t.Errorf("%s.DaysUntil(%s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}
	b, err := json.Marshal(wrapper{D: NewDate(2025, 1, 5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"d":"2025-01-05"}` {
		t.Fatalf("unexpected json: %s", b)
	}
	var w wrapper
	if err := json.Unmarshal([]byte(`{"d":null}`), &w); err != nil || !w.D.IsZero() {
		t.Fatalf("null should decode to zero date, got %v err=%v", w.D, err)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2025-06-01"); err != nil || !d.Equal(NewDate(2025, 6, 1)) {
		t.Fatalf("scan string: %v %v", d, err)
	}
	if err := d.Scan([]byte("2025-06-02")); err != nil || !d.Equal(NewDate(2025, 6, 2)) {
		t.Fatalf("scan bytes: %v %v", d, err)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Fatalf("scan nil: %v %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}
