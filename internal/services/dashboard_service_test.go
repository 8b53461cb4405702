package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/clock"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

func dashboardFixture() *fakeStore {
	store := newFakeStore(
		expense("e1", 40000, "2025-03-02", "food"),
		expense("e2", 20000, "2025-03-10", "home"),
		expense("e3", 50000, "2025-02-10", "food"),
		income("i1", 200000, "2025-03-27"),
		income("i2", 100000, "2025-02-27"),
		expense("old", 99999, "2024-12-01", "food"),
		expense("zero", 0, "2025-03-05", "fun"),
	)
	store.budgets["u1"] = []core.BudgetConfig{
		{CategoryID: "food", Limit: core.Cents(45000), Enabled: true},
		{CategoryID: "home", Limit: core.Cents(-1), Enabled: true},
	}
	return store
}

func TestDashboardService_Build(t *testing.T) {
	store := dashboardFixture()
	svc := NewDashboardService(store, store, clock.Fixed(d("2025-03-20")), DashboardOptions{})

	dash, err := svc.Build(context.Background(), "u1", 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-20", dash.Today.String())
	assert.Equal(t, int64(60000), dash.Summary.TotalExpenses.Cents)
	assert.Equal(t, 3, dash.Summary.ExpensesCount)
	assert.Equal(t, int64(140000), dash.Summary.Balance.Cents)
	assert.Equal(t, int64(50000), dash.Previous.TotalExpenses.Cents)

	require.NotNil(t, dash.Trend.Expenses)
	assert.InDelta(t, 20.0, *dash.Trend.Expenses, 1e-9)
	require.NotNil(t, dash.Trend.Income)
	assert.InDelta(t, 100.0, *dash.Trend.Income, 1e-9)

	require.Len(t, dash.TopCategories, 3)
	assert.Equal(t, "food", dash.TopCategories[0].CategoryID)

	// the home budget is invalid and skipped
	require.Len(t, dash.Budgets, 1)
	assert.Equal(t, "food", dash.Budgets[0].CategoryID)
	assert.True(t, dash.Budgets[0].AlertActive)

	require.Len(t, dash.Warnings, 1)
	assert.Equal(t, "zero", dash.Warnings[0].RecordID)
}

func TestDashboardService_Cache(t *testing.T) {
	store := dashboardFixture()
	svc := NewDashboardService(store, store, clock.Fixed(d("2025-03-20")), DashboardOptions{CacheTTL: time.Minute})
	ctx := context.Background()

	_, err := svc.Build(ctx, "u1", 2025, 3)
	require.NoError(t, err)
	_, err = svc.Build(ctx, "u1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)

	svc.Invalidate("u1")
	_, err = svc.Build(ctx, "u1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)

	// another month is a separate entry
	_, err = svc.Build(ctx, "u1", 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, store.listCalls)
	assert.Equal(t, 2, svc.Cache().Size())
}

func TestDashboardService_CacheFollowsToday(t *testing.T) {
	store := dashboardFixture()
	today := d("2025-03-20")
	svc := NewDashboardService(store, store, clock.Func(func() core.Date { return today }), DashboardOptions{CacheTTL: time.Hour})
	ctx := context.Background()

	_, err := svc.Build(ctx, "u1", 2025, 3)
	require.NoError(t, err)
	today = today.AddDays(1)
	dash, err := svc.Build(ctx, "u1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
	assert.Equal(t, "2025-03-21", dash.Today.String())
}

func TestDashboardService_Errors(t *testing.T) {
	store := dashboardFixture()
	svc := NewDashboardService(store, store, clock.Fixed(d("2025-03-20")), DashboardOptions{})
	ctx := context.Background()

	_, err := svc.Build(ctx, "u1", 2025, 13)
	assert.ErrorIs(t, err, core.ErrInvalidMonth)

	_, err = svc.Build(ctx, "a|b", 2025, 3)
	assert.True(t, core.IsValidation(err))

	store.listErr = errors.New("disk on fire")
	_, err = svc.Build(ctx, "u1", 2025, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list records")
	assert.False(t, core.IsValidation(err))
}

func TestDashboardService_Upcoming(t *testing.T) {
	store := newFakeStore(
		recurring(expense("rent", 90000, "2025-01-05", "home"), core.Monthly),
		withStatus(expense("paid", 100, "2025-03-01", ""), core.StatusPaid),
	)
	svc := NewDashboardService(store, store, clock.Fixed(d("2025-03-20")), DashboardOptions{})

	items, err := svc.Upcoming(context.Background(), "u1", 3)
	require.NoError(t, err)
	// the overdue base record plus three projections
	require.Len(t, items, 4)
	assert.Equal(t, UpcomingRealized, items[0].Kind)
	assert.Equal(t, "2025-04-05", items[1].Date.String())

	_, err = svc.Upcoming(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, core.ErrInvalidCount)
}

func TestDashboardService_LogsWarningsWithFields(t *testing.T) {
	store := dashboardFixture()
	svc := NewDashboardService(store, store, clock.Fixed(d("2025-03-20")), DashboardOptions{})
	assert.Equal(t, log.ComponentDashboard, svc.log.Component())

	l, lines := jsonLogger(t, svc.log.Component())
	svc.log = l

	_, err := svc.Build(context.Background(), "u1", 2025, 3)
	require.NoError(t, err)

	budget := linesWithMsg(lines(), "Skipping invalid budget")
	require.Len(t, budget, 1)
	assert.Equal(t, log.ComponentDashboard, budget[0][log.FieldComponent])
	assert.Equal(t, "home", budget[0][log.FieldCategoryID])
	assert.Contains(t, budget[0][log.FieldError], "limit")

	state := linesWithMsg(lines(), "Inconsistent record state")
	require.Len(t, state, 1)
	assert.Equal(t, "zero", state[0][log.FieldRecordID])
	assert.NotEmpty(t, state[0][log.FieldReason])
	assert.Equal(t, "2025-03-20", state[0][log.FieldToday])
}
