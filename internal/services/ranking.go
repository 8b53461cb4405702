package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

var hundred = decimal.NewFromInt(100)

// RankCategories groups expense records by category and returns the top
// limit entries by total, ties broken by ascending category id.
// Income records are ignored. limit <= 0 returns every category.
func RankCategories(records []core.Record, limit int) []core.CategorySummary {
	byCategory := map[string]*core.CategorySummary{}
	var monthTotal int64
	for _, r := range records {
		if r.Kind != core.Expense {
			continue
		}
		id := r.Category()
		cs, ok := byCategory[id]
		if !ok {
			cs = &core.CategorySummary{CategoryID: id}
			byCategory[id] = cs
		}
		amount := r.Amount.Abs()
		cs.Total = cs.Total.Add(amount)
		cs.Count++
		monthTotal += amount.Cents
	}

	out := make([]core.CategorySummary, 0, len(byCategory))
	for _, cs := range byCategory {
		cs.Percentage = percentOf(cs.Total.Cents, monthTotal)
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].CategoryID < out[j].CategoryID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// percentOf returns part/whole*100, or 0 when whole is 0.
func percentOf(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).InexactFloat64()
}
