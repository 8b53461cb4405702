package core

import (
	"fmt"
	"strings"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

const (
	StatusUnset   StoredStatus = ""
	StatusPending StoredStatus = "pending"
	StatusPaid    StoredStatus = "paid"
	StatusOverdue StoredStatus = "overdue"
)

const (
	None    Frequency = "none"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	// Kind separates expenses from incomes.
	Kind string

	// StoredStatus is the raw status persisted on a record.
	StoredStatus string

	// Frequency is the repetition period of a recurring record.
	Frequency string

	// Record is a dated expense or income instance as fetched from the store.
	// Records are never mutated by the engine.
	Record struct {
		ID          string       `json:"id"`
		UserID      string       `json:"user_id"`
		Kind        Kind         `json:"kind"`
		Amount      Money        `json:"amount"`
		Date        Date         `json:"date"`
		CategoryID  *string      `json:"category_id,omitempty"`
		Description string       `json:"description,omitempty"`
		Status      StoredStatus `json:"stored_status"`
		IsRecurring bool         `json:"is_recurring"`
		Frequency   Frequency    `json:"frequency"`
		TemplateID  *string      `json:"template_id,omitempty"` // set when the record realizes an occurrence of a template
		Currency    string       `json:"currency,omitempty"`    // display label only
	}

	// RecurringTemplate is the recurrence-defining part of a recurring record.
	RecurringTemplate struct {
		ID          string
		BaseDate    Date
		Frequency   Frequency
		Amount      Money
		CategoryID  *string
		Kind        Kind
		Description string
	}
)

func (k Kind) Valid() bool { return k == Expense || k == Income }

// ParseKind accepts "expense" or "income" in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", Invalid("kind", fmt.Errorf("%w: %q", ErrInvalidKind, s))
	}
	return k, nil
}

// Repeats reports whether f is a projectable period.
func (f Frequency) Repeats() bool {
	switch f {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// ParseFrequency maps an empty string to None.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return None, nil
	}
	if f != None && !f.Repeats() {
		return "", Invalid("frequency", fmt.Errorf("%w: %q", ErrInvalidFrequency, s))
	}
	return f, nil
}

// Category returns the category id or "" when the record is uncategorized.
func (r Record) Category() string {
	if r.CategoryID == nil {
		return ""
	}
	return *r.CategoryID
}

// IsPaid reports whether the stored status is paid.
func (r Record) IsPaid() bool { return r.Status == StatusPaid }

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return Invalid("id", ErrEmptyID)
	}
	if !r.Kind.Valid() {
		return Invalid("kind", ErrInvalidKind)
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.IsRecurring && !r.Frequency.Repeats() {
		return Invalid("frequency", ErrInvalidFrequency)
	}
	return nil
}

// TemplateFromRecord extracts the recurring template defined by r.
func TemplateFromRecord(r Record) (RecurringTemplate, error) {
	if !r.IsRecurring {
		return RecurringTemplate{}, Invalid("template", fmt.Errorf("%w: %s", ErrNotRecurring, r.ID))
	}
	if !r.Frequency.Repeats() {
		return RecurringTemplate{}, Invalid("frequency", fmt.Errorf("%w: record %s has %q", ErrInvalidFrequency, r.ID, r.Frequency))
	}
	return RecurringTemplate{
		ID:          r.ID,
		BaseDate:    r.Date,
		Frequency:   r.Frequency,
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		Kind:        r.Kind,
		Description: r.Description,
	}, nil
}
