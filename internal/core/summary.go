package core

const (
	EffectivePaid    EffectiveStatus = "paid"
	EffectivePending EffectiveStatus = "pending"
	EffectiveOverdue EffectiveStatus = "overdue"
)

// Urgency tiers, most urgent first. The numeric order is the sort order.
const (
	Overdue UrgencyTier = iota
	DueToday
	DueTomorrow
	DueSoon
	DueThisWeek
	DueLater
)

// DefaultAlertThresholdPercent is used when a budget has no threshold configured.
const DefaultAlertThresholdPercent = 80

type (
	// EffectiveStatus is the status derived from the stored status and the date.
	EffectiveStatus string

	// UrgencyTier buckets days-until-due for sorting and emphasis.
	UrgencyTier int

	// VirtualOccurrence is a projected, not yet realized instance of a template.
	VirtualOccurrence struct {
		TemplateID     string      `json:"template_id"`
		OccurrenceDate Date        `json:"occurrence_date"`
		Amount         Money       `json:"amount"`
		CategoryID     *string     `json:"category_id,omitempty"`
		Kind           Kind        `json:"kind"`
		DaysUntilDue   int         `json:"days_until_due"`
		UrgencyTier    UrgencyTier `json:"urgency_tier"`
	}

	// MonthlySummary is a compact summary for a specific year+month.
	// Balance is always TotalIncome - TotalExpenses.
	MonthlySummary struct {
		Year          int   `json:"year"`
		Month         int   `json:"month"` // 1-12
		TotalExpenses Money `json:"total_expenses"`
		ExpensesCount int   `json:"expenses_count"`
		TotalIncome   Money `json:"total_income"`
		IncomesCount  int   `json:"incomes_count"`
		Balance       Money `json:"balance"`
	}

	// CategorySummary is the spend of one category within a month.
	CategorySummary struct {
		CategoryID string  `json:"category_id"`
		Total      Money   `json:"total"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}

	// BudgetConfig is the monthly budget configured for a category.
	BudgetConfig struct {
		CategoryID            string `json:"category_id"`
		Limit                 Money  `json:"limit"`
		AlertThresholdPercent int    `json:"alert_threshold_percent"`
		Enabled               bool   `json:"enabled"`
	}

	// BudgetStatus evaluates a category's spend against its limit.
	BudgetStatus struct {
		CategoryID            string  `json:"category_id"`
		Limit                 Money   `json:"limit"`
		Spent                 Money   `json:"spent"`
		Available             Money   `json:"available"`
		PercentageUsed        float64 `json:"percentage_used"`
		AlertThresholdPercent int     `json:"alert_threshold_percent"`
		AlertActive           bool    `json:"alert_active"`
		Exceeded              bool    `json:"exceeded"`
		Year                  int     `json:"year"`
		Month                 int     `json:"month"`
	}

	// MonthTrend holds month-over-month percentage changes; nil means no baseline.
	MonthTrend struct {
		Expenses *float64 `json:"expenses"`
		Income   *float64 `json:"income"`
		Balance  *float64 `json:"balance"`
	}

	// InconsistentStateWarning flags a data-quality issue the engine tolerates.
	InconsistentStateWarning struct {
		RecordID string `json:"record_id"`
		Reason   string `json:"reason"`
	}
)

var tierNames = [...]string{"overdue", "due_today", "due_tomorrow", "due_soon", "due_this_week", "due_later"}

func (t UrgencyTier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

func (t UrgencyTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
