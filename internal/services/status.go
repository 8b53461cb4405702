// Package services provides the obligation status and recurrence engine and
// the services that feed it from the record store.
//
// The engine functions (Classify, ProjectOccurrences, RankUrgency,
// AggregateMonth, RankCategories, ComputeBudgetStatus, Trend, MarkAsPaid,
// Postpone) are pure: they take already-fetched records and an explicit
// "today" and never read the clock or touch storage.
package services

import "fintrack/internal/core"

// Classify derives the effective status of a record relative to today.
//
// A stored paid status is terminal. Any other record dated before today is
// overdue; a record dated today or later is pending.
func Classify(r core.Record, today core.Date) core.EffectiveStatus {
	if r.IsPaid() {
		return core.EffectivePaid
	}
	if r.Date.Before(today) {
		return core.EffectiveOverdue
	}
	return core.EffectivePending
}
