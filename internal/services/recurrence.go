package services

import (
	"fmt"

	"fintrack/internal/core"
)

// PeriodAdvancer is the strategy for stepping a recurring template through
// its occurrences. Each frequency has its own implementation.
type PeriodAdvancer interface {
	// Nth returns the n-th occurrence counted from base (n = 0 is base).
	// Computing from base keeps a clamped day (Jan 31 -> Feb 28) from
	// drifting the anchor of later months.
	Nth(base core.Date, n int) core.Date
}

// WeeklyAdvancer adds 7 calendar days per period.
type WeeklyAdvancer struct{}

func (WeeklyAdvancer) Nth(base core.Date, n int) core.Date {
	return base.AddDays(7 * n)
}

// MonthlyAdvancer adds calendar months, clamping to the last day of short months.
type MonthlyAdvancer struct{}

func (MonthlyAdvancer) Nth(base core.Date, n int) core.Date {
	return base.AddMonthsClamped(n)
}

// YearlyAdvancer adds calendar years; Feb 29 falls on Feb 28 in common years.
type YearlyAdvancer struct{}

func (YearlyAdvancer) Nth(base core.Date, n int) core.Date {
	return base.AddYearsClamped(n)
}

// periodAdvancers maps frequencies to their strategies. It is read-only
// after init so projections can run concurrently.
var periodAdvancers = map[core.Frequency]PeriodAdvancer{
	core.Weekly:  WeeklyAdvancer{},
	core.Monthly: MonthlyAdvancer{},
	core.Yearly:  YearlyAdvancer{},
}

// GetPeriodAdvancer returns the strategy for a frequency.
// None and unknown frequencies are validation errors.
func GetPeriodAdvancer(f core.Frequency) (PeriodAdvancer, error) {
	adv, ok := periodAdvancers[f]
	if !ok {
		return nil, core.Invalid("frequency", fmt.Errorf("%w: %q", core.ErrInvalidFrequency, f))
	}
	return adv, nil
}

// ProjectOccurrences returns the next count occurrences of tpl on or after
// today, strictly increasing by date, ranked with the default urgency policy.
func ProjectOccurrences(tpl core.RecurringTemplate, today core.Date, count int) ([]core.VirtualOccurrence, error) {
	return DefaultUrgencyPolicy().Project(tpl, today, count)
}

// Project is ProjectOccurrences with the policy's urgency cutoffs.
func (p UrgencyPolicy) Project(tpl core.RecurringTemplate, today core.Date, count int) ([]core.VirtualOccurrence, error) {
	if count < 1 {
		return nil, core.Invalid("count", fmt.Errorf("%w: got %d", core.ErrInvalidCount, count))
	}
	adv, err := GetPeriodAdvancer(tpl.Frequency)
	if err != nil {
		return nil, err
	}
	if err := tpl.BaseDate.Validate(); err != nil {
		return nil, err
	}

	// Walk one period at a time from the base date until we reach today.
	n := 0
	for adv.Nth(tpl.BaseDate, n).Before(today) {
		n++
	}

	out := make([]core.VirtualOccurrence, 0, count)
	for i := 0; i < count; i++ {
		date := adv.Nth(tpl.BaseDate, n+i)
		days := today.DaysUntil(date)
		out = append(out, core.VirtualOccurrence{
			TemplateID:     tpl.ID,
			OccurrenceDate: date,
			Amount:         tpl.Amount,
			CategoryID:     tpl.CategoryID,
			Kind:           tpl.Kind,
			DaysUntilDue:   days,
			UrgencyTier:    p.Rank(days),
		})
	}
	return out, nil
}

// ExtractTemplates returns the templates defined by the recurring records.
// Records that cannot form a template are skipped; InspectRecords reports them.
func ExtractTemplates(records []core.Record) []core.RecurringTemplate {
	var out []core.RecurringTemplate
	for _, r := range records {
		if !r.IsRecurring {
			continue
		}
		tpl, err := core.TemplateFromRecord(r)
		if err != nil {
			continue
		}
		out = append(out, tpl)
	}
	return out
}
