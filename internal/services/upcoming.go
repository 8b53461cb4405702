package services

import (
	"sort"

	"fintrack/internal/core"
)

// UpcomingKind tags an UpcomingItem as a stored record or a projection.
type UpcomingKind string

const (
	UpcomingRealized UpcomingKind = "realized"
	UpcomingVirtual  UpcomingKind = "virtual"
)

// UpcomingItem is one entry of the upcoming feed. Exactly one of Record and
// Occurrence is set, according to Kind.
type UpcomingItem struct {
	Kind         UpcomingKind            `json:"kind"`
	Date         core.Date               `json:"date"`
	DaysUntilDue int                     `json:"days_until_due"`
	Tier         core.UrgencyTier        `json:"urgency_tier"`
	Status       core.EffectiveStatus    `json:"status"`
	Record       *core.Record            `json:"record,omitempty"`
	Occurrence   *core.VirtualOccurrence `json:"occurrence,omitempty"`
}

func (it UpcomingItem) id() string {
	if it.Record != nil {
		return it.Record.ID
	}
	if it.Occurrence != nil {
		return it.Occurrence.TemplateID
	}
	return ""
}

type occurrenceKey struct {
	template string
	date     core.Date
}

// BuildUpcoming merges unpaid records with the next count projected
// occurrences of every recurring record.
//
// A projection is dropped when a stored record already realizes the same
// template on the same date, so one obligation never shows twice. Items are
// ordered by date, then urgency tier, then id.
func (p UrgencyPolicy) BuildUpcoming(records []core.Record, today core.Date, count int) ([]UpcomingItem, error) {
	if count < 1 {
		return nil, core.Invalid("count", core.ErrInvalidCount)
	}

	realized := map[occurrenceKey]struct{}{}
	var items []UpcomingItem
	for i := range records {
		r := records[i]
		if r.TemplateID != nil {
			realized[occurrenceKey{*r.TemplateID, r.Date}] = struct{}{}
		}
		if r.IsRecurring {
			realized[occurrenceKey{r.ID, r.Date}] = struct{}{}
		}
		status := Classify(r, today)
		if status == core.EffectivePaid {
			continue
		}
		days := today.DaysUntil(r.Date)
		items = append(items, UpcomingItem{
			Kind:         UpcomingRealized,
			Date:         r.Date,
			DaysUntilDue: days,
			Tier:         p.Rank(days),
			Status:       status,
			Record:       &r,
		})
	}

	for _, tpl := range ExtractTemplates(records) {
		occs, err := p.Project(tpl, today, count)
		if err != nil {
			return nil, err
		}
		for i := range occs {
			occ := occs[i]
			if _, ok := realized[occurrenceKey{occ.TemplateID, occ.OccurrenceDate}]; ok {
				continue
			}
			items = append(items, UpcomingItem{
				Kind:         UpcomingVirtual,
				Date:         occ.OccurrenceDate,
				DaysUntilDue: occ.DaysUntilDue,
				Tier:         occ.UrgencyTier,
				Status:       core.EffectivePending,
				Occurrence:   &occ,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if c := items[i].Date.Compare(items[j].Date); c != 0 {
			return c < 0
		}
		if items[i].Tier != items[j].Tier {
			return items[i].Tier < items[j].Tier
		}
		return items[i].id() < items[j].id()
	})
	return items, nil
}

// BuildUpcoming uses the default urgency policy.
func BuildUpcoming(records []core.Record, today core.Date, count int) ([]UpcomingItem, error) {
	return DefaultUrgencyPolicy().BuildUpcoming(records, today, count)
}
