package services

import (
	"context"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

// RecordFilter narrows a record listing. Zero fields do not filter.
type RecordFilter struct {
	From core.Date // inclusive
	To   core.Date // inclusive
	Kind core.Kind
}

// Match reports whether r passes the filter.
func (f RecordFilter) Match(r core.Record) bool {
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(f.To) {
		return false
	}
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	return true
}

// RecordFetcher lists a user's records.
type RecordFetcher interface {
	ListRecords(ctx context.Context, userID string, filter RecordFilter) ([]core.Record, error)
}

// BudgetLookup reads budget configuration.
type BudgetLookup interface {
	Budget(ctx context.Context, userID, categoryID string) (core.BudgetConfig, bool, error)
	ListBudgets(ctx context.Context, userID string) ([]core.BudgetConfig, error)
}

// RecordWriter loads and stores single records. GetRecord returns an error
// matching core.ErrNotFound for unknown ids.
type RecordWriter interface {
	GetRecord(ctx context.Context, userID, recordID string) (core.Record, error)
	SaveRecord(ctx context.Context, r core.Record) error
}

// UserLister enumerates users that own records.
type UserLister interface {
	ListUsers(ctx context.Context) ([]string, error)
}

// ReminderSource is what the reminder worker reads.
type ReminderSource interface {
	RecordFetcher
	UserLister
}

// RecordStore is everything a backend provides.
type RecordStore interface {
	RecordFetcher
	RecordWriter
	BudgetLookup
	UserLister
	Close() error
}

// EventPublisher delivers obligation events and reminders.
// *amqp.Client satisfies it.
type EventPublisher interface {
	PublishObligationEvent(ctx context.Context, e *amqp.ObligationEvent) error
	PublishDueReminder(ctx context.Context, r *amqp.DueReminder) error
}

var _ EventPublisher = (*amqp.Client)(nil)
