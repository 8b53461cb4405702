package services

import "fintrack/internal/core"

const (
	ReasonPaidInFuture        = "paid record dated in the future"
	ReasonZeroAmount          = "zero amount"
	ReasonRecurringNoInterval = "recurring record without a repeating frequency"
)

// InspectRecords reports data-quality issues the engine tolerates but
// cannot correct. It never fails.
func InspectRecords(records []core.Record, today core.Date) []core.InconsistentStateWarning {
	var out []core.InconsistentStateWarning
	for _, r := range records {
		if r.IsPaid() && r.Date.After(today) {
			out = append(out, core.InconsistentStateWarning{RecordID: r.ID, Reason: ReasonPaidInFuture})
		}
		if r.Amount.IsZero() {
			out = append(out, core.InconsistentStateWarning{RecordID: r.ID, Reason: ReasonZeroAmount})
		}
		if r.IsRecurring && !r.Frequency.Repeats() {
			out = append(out, core.InconsistentStateWarning{RecordID: r.ID, Reason: ReasonRecurringNoInterval})
		}
	}
	return out
}
