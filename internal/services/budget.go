package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// ComputeBudgetStatus evaluates spent against a category's monthly limit.
//
// A non-positive limit is rejected, never clamped. An alert threshold of 0
// selects core.DefaultAlertThresholdPercent; other values must be 1..100.
// Exceeded takes precedence over the alert flag.
func ComputeBudgetStatus(categoryID string, limit core.Money, alertThresholdPercent int, spent core.Money, year, month int) (core.BudgetStatus, error) {
	if limit.Cents <= 0 {
		return core.BudgetStatus{}, core.Invalid("limit", fmt.Errorf("%w: got %s", core.ErrInvalidLimit, limit))
	}
	if alertThresholdPercent == 0 {
		alertThresholdPercent = core.DefaultAlertThresholdPercent
	}
	if alertThresholdPercent < 1 || alertThresholdPercent > 100 {
		return core.BudgetStatus{}, core.Invalid("alert threshold", fmt.Errorf("%w: got %d", core.ErrInvalidThreshold, alertThresholdPercent))
	}
	if month < 1 || month > 12 {
		return core.BudgetStatus{}, core.Invalid("month", fmt.Errorf("%w: got %d", core.ErrInvalidMonth, month))
	}

	used := decimal.NewFromInt(spent.Cents).Mul(hundred).Div(decimal.NewFromInt(limit.Cents))
	exceeded := used.GreaterThanOrEqual(hundred)
	alert := !exceeded && used.GreaterThanOrEqual(decimal.NewFromInt(int64(alertThresholdPercent)))

	return core.BudgetStatus{
		CategoryID:            categoryID,
		Limit:                 limit,
		Spent:                 spent,
		Available:             limit.Sub(spent),
		PercentageUsed:        used.InexactFloat64(),
		AlertThresholdPercent: alertThresholdPercent,
		AlertActive:           alert,
		Exceeded:              exceeded,
		Year:                  year,
		Month:                 month,
	}, nil
}

// CategorySpent sums the expense magnitudes of one category in a month.
func CategorySpent(records []core.Record, categoryID string, year, month int) core.Money {
	var spent core.Money
	for _, r := range records {
		if r.Kind != core.Expense || r.Category() != categoryID || !r.Date.InMonth(year, month) {
			continue
		}
		spent = spent.Add(r.Amount.Abs())
	}
	return spent
}

// BudgetError reports a budget configuration that failed validation.
type BudgetError struct {
	CategoryID string
	Err        error
}

func (e *BudgetError) Error() string { return fmt.Sprintf("budget %s: %v", e.CategoryID, e.Err) }

func (e *BudgetError) Unwrap() error { return e.Err }

// BudgetStatuses evaluates every enabled budget against the month's records.
// Disabled budgets produce no entry. Budgets that fail validation are
// returned separately so one bad configuration never hides the others.
func BudgetStatuses(budgets []core.BudgetConfig, records []core.Record, year, month, defaultThreshold int) ([]core.BudgetStatus, []error) {
	var (
		out  []core.BudgetStatus
		errs []error
	)
	for _, b := range budgets {
		if !b.Enabled {
			continue
		}
		threshold := b.AlertThresholdPercent
		if threshold == 0 {
			threshold = defaultThreshold
		}
		st, err := ComputeBudgetStatus(b.CategoryID, b.Limit, threshold, CategorySpent(records, b.CategoryID, year, month), year, month)
		if err != nil {
			errs = append(errs, &BudgetError{CategoryID: b.CategoryID, Err: err})
			continue
		}
		out = append(out, st)
	}
	return out, errs
}
