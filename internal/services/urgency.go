package services

import (
	"fmt"

	"fintrack/internal/core"
)

// UrgencyPolicy holds the day cutoffs of the dueSoon and dueThisWeek tiers.
// Both bounds are inclusive.
type UrgencyPolicy struct {
	SoonDays int
	WeekDays int
}

// DefaultUrgencyPolicy returns the 3 and 7 day cutoffs.
func DefaultUrgencyPolicy() UrgencyPolicy {
	return UrgencyPolicy{SoonDays: 3, WeekDays: 7}
}

func (p UrgencyPolicy) Validate() error {
	if p.SoonDays < 2 {
		return core.Invalid("urgency soon days", fmt.Errorf("must be at least 2, got %d", p.SoonDays))
	}
	if p.WeekDays < p.SoonDays {
		return core.Invalid("urgency week days", fmt.Errorf("must be at least soon days (%d), got %d", p.SoonDays, p.WeekDays))
	}
	return nil
}

// Rank maps days until due to a tier.
func (p UrgencyPolicy) Rank(daysUntilDue int) core.UrgencyTier {
	switch {
	case daysUntilDue < 0:
		return core.Overdue
	case daysUntilDue == 0:
		return core.DueToday
	case daysUntilDue == 1:
		return core.DueTomorrow
	case daysUntilDue <= p.SoonDays:
		return core.DueSoon
	case daysUntilDue <= p.WeekDays:
		return core.DueThisWeek
	default:
		return core.DueLater
	}
}

// RankUrgency ranks with the default policy.
func RankUrgency(daysUntilDue int) core.UrgencyTier {
	return DefaultUrgencyPolicy().Rank(daysUntilDue)
}
