package core

import (
	"errors"
	"testing"
)

func strptr(s string) *string { return &s }

func TestRecordValidate(t *testing.T) {
	good := Record{ID: "r1", Kind: Expense, Amount: Cents(100), Date: NewDate(2025, 1, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Record{
		{ID: "", Kind: Expense, Date: NewDate(2025, 1, 1)},
		{ID: "r", Kind: "transfer", Date: NewDate(2025, 1, 1)},
		{ID: "r", Kind: Income},
		{ID: "r", Kind: Income, Date: NewDate(2025, 1, 1), IsRecurring: true, Frequency: None},
	}
	for i, r := range bads {
		if err := r.Validate(); !IsValidation(err) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestTemplateFromRecord(t *testing.T) {
	r := Record{
		ID: "rent", Kind: Expense, Amount: Cents(50000), Date: NewDate(2025, 1, 15),
		CategoryID: strptr("home"), IsRecurring: true, Frequency: Monthly,
	}
	tpl, err := TemplateFromRecord(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.ID != "rent" || !tpl.BaseDate.Equal(r.Date) || tpl.Frequency != Monthly || *tpl.CategoryID != "home" {
		t.Fatalf("unexpected template: %+v", tpl)
	}

	r.Frequency = None
	if _, err := TemplateFromRecord(r); !errors.Is(err, ErrInvalidFrequency) || !IsValidation(err) {
		t.Fatalf("expected invalid frequency, got %v", err)
	}

	r.IsRecurring = false
	r.Frequency = Monthly
	if _, err := TemplateFromRecord(r); !errors.Is(err, ErrNotRecurring) {
		t.Fatalf("expected not recurring, got %v", err)
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    Frequency
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"Weekly", Weekly, false},
		{"monthly", Monthly, false},
		{"yearly", Yearly, false},
		{"daily", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFrequency(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestUrgencyTierString(t *testing.T) {
	if DueSoon.String() != "due_soon" || Overdue.String() != "overdue" || UrgencyTier(99).String() != "unknown" {
		t.Fatalf("unexpected tier names")
	}
}
