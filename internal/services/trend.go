package services

import (
	"math"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Trend returns the percentage change from previous to current, or nil
// when there is no baseline (previous absent or exactly zero) or either
// value is NaN or infinite.
func Trend(current float64, previous *float64) *float64 {
	if previous == nil || *previous == 0 || !finite(current) || !finite(*previous) {
		return nil
	}
	prev := decimal.NewFromFloat(*previous)
	pct := decimal.NewFromFloat(current).Sub(prev).Div(prev).Mul(hundred).InexactFloat64()
	return &pct
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// CompareMonths computes the expense, income and balance trends between two summaries.
func CompareMonths(current, previous core.MonthlySummary) core.MonthTrend {
	return core.MonthTrend{
		Expenses: moneyTrend(current.TotalExpenses, previous.TotalExpenses),
		Income:   moneyTrend(current.TotalIncome, previous.TotalIncome),
		Balance:  moneyTrend(current.Balance, previous.Balance),
	}
}

func moneyTrend(current, previous core.Money) *float64 {
	prev := float64(previous.Cents)
	return Trend(float64(current.Cents), &prev)
}
