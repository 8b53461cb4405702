package services

import "fintrack/internal/core"

// AggregateMonth sums the records of one calendar month.
//
// Amounts are summed by magnitude and the record kind decides which side
// they land on. A month without records yields an all-zero summary.
func AggregateMonth(records []core.Record, year, month int) core.MonthlySummary {
	s := core.MonthlySummary{Year: year, Month: month}
	for _, r := range records {
		if !r.Date.InMonth(year, month) {
			continue
		}
		switch r.Kind {
		case core.Expense:
			s.TotalExpenses = s.TotalExpenses.Add(r.Amount.Abs())
			s.ExpensesCount++
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(r.Amount.Abs())
			s.IncomesCount++
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// PreviousMonth returns the calendar month before (year, month).
func PreviousMonth(year, month int) (int, int) {
	if month <= 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// RecordsInMonth filters records to one calendar month, optionally by kind.
func RecordsInMonth(records []core.Record, year, month int, kind core.Kind) []core.Record {
	var out []core.Record
	for _, r := range records {
		if !r.Date.InMonth(year, month) {
			continue
		}
		if kind != "" && r.Kind != kind {
			continue
		}
		out = append(out, r)
	}
	return out
}
