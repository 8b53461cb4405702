package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cache"
	"fintrack/internal/clock"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Dashboard is everything the monthly dashboard widgets render.
type Dashboard struct {
	Today         core.Date                       `json:"today"`
	Summary       core.MonthlySummary             `json:"summary"`
	Previous      core.MonthlySummary             `json:"previous"`
	Trend         core.MonthTrend                 `json:"trend"`
	TopCategories []core.CategorySummary          `json:"top_categories"`
	Budgets       []core.BudgetStatus             `json:"budgets"`
	Warnings      []core.InconsistentStateWarning `json:"warnings"`
}

// DashboardOptions tunes a DashboardService. Zero values select defaults.
type DashboardOptions struct {
	Policy                UrgencyPolicy
	DefaultAlertThreshold int
	TopCategories         int
	CacheTTL              time.Duration
	CacheSize             int
}

// DashboardService fetches a user's records once per request and runs the
// engine over them. Results are cached per user, month and day.
type DashboardService struct {
	records RecordFetcher
	budgets BudgetLookup
	clock   clock.Clock
	cache   *cache.LRUCache[*Dashboard]
	opts    DashboardOptions
	log     *log.Logger
}

func NewDashboardService(records RecordFetcher, budgets BudgetLookup, clk clock.Clock, opts DashboardOptions) *DashboardService {
	if opts.Policy == (UrgencyPolicy{}) {
		opts.Policy = DefaultUrgencyPolicy()
	}
	if opts.DefaultAlertThreshold == 0 {
		opts.DefaultAlertThreshold = core.DefaultAlertThresholdPercent
	}
	if opts.TopCategories == 0 {
		opts.TopCategories = 5
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = 256
	}
	s := &DashboardService{records: records, budgets: budgets, clock: clk, opts: opts, log: log.Default(log.ComponentDashboard)}
	if opts.CacheTTL > 0 {
		s.cache = cache.NewLRUCache[*Dashboard](opts.CacheSize, opts.CacheTTL)
	}
	return s
}

// Cache exposes the result cache so the caller can register it for cleanup.
// It is nil when caching is disabled.
func (s *DashboardService) Cache() *cache.LRUCache[*Dashboard] { return s.cache }

func cacheKey(userID string, year, month int, today core.Date) string {
	return fmt.Sprintf("%s|%04d-%02d|%s", userID, year, month, today)
}

// Build computes the dashboard for year/month. Today is read once and used
// for every derived value.
func (s *DashboardService) Build(ctx context.Context, userID string, year, month int) (*Dashboard, error) {
	if month < 1 || month > 12 {
		return nil, core.Invalid("month", core.ErrInvalidMonth)
	}
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	today := s.clock.Today()

	key := cacheKey(userID, year, month, today)
	if s.cache != nil {
		if d, ok := s.cache.Get(key); ok {
			return d, nil
		}
	}

	py, pm := PreviousMonth(year, month)
	filter := RecordFilter{From: core.NewDate(py, pm, 1), To: core.NewDate(year, month, core.DaysInMonth(year, month))}

	var (
		records []core.Record
		budgets []core.BudgetConfig
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.records.ListRecords(gctx, userID, filter)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListBudgets(gctx, userID)
		if err != nil {
			return fmt.Errorf("list budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := s.compute(ctx, records, budgets, year, month, today)
	if s.cache != nil {
		s.cache.Set(key, d)
	}
	return d, nil
}

func (s *DashboardService) compute(ctx context.Context, records []core.Record, budgets []core.BudgetConfig, year, month int, today core.Date) *Dashboard {
	py, pm := PreviousMonth(year, month)
	current := AggregateMonth(records, year, month)
	previous := AggregateMonth(records, py, pm)

	statuses, errs := BudgetStatuses(budgets, records, year, month, s.opts.DefaultAlertThreshold)
	for _, err := range errs {
		var be *BudgetError
		if errors.As(err, &be) {
			s.log.WarnContext(ctx, "Skipping invalid budget", log.FieldCategoryID, be.CategoryID, log.FieldError, be.Err)
			continue
		}
		s.log.WarnContext(ctx, "Skipping invalid budget", log.FieldError, err)
	}

	warnings := InspectRecords(records, today)
	for _, w := range warnings {
		s.log.WarnContext(ctx, "Inconsistent record state",
			log.FieldRecordID, w.RecordID,
			log.FieldReason, w.Reason,
			log.FieldToday, today.String())
	}

	return &Dashboard{
		Today:         today,
		Summary:       current,
		Previous:      previous,
		Trend:         CompareMonths(current, previous),
		TopCategories: RankCategories(RecordsInMonth(records, year, month, core.Expense), s.opts.TopCategories),
		Budgets:       statuses,
		Warnings:      warnings,
	}
}

// Upcoming returns the next obligations of a user: unpaid records plus count
// projected occurrences per recurring template.
func (s *DashboardService) Upcoming(ctx context.Context, userID string, count int) ([]UpcomingItem, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	today := s.clock.Today()
	records, err := s.records.ListRecords(ctx, userID, RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return s.opts.Policy.BuildUpcoming(records, today, count)
}

// Invalidate drops every cached dashboard of a user.
func (s *DashboardService) Invalidate(userID string) {
	if s.cache == nil {
		return
	}
	n := s.cache.DeletePrefix(userID + "|")
	if n > 0 {
		s.log.Debug("Invalidated dashboard cache", log.FieldUserID, userID, "entries", n)
	}
}

// Policy returns the urgency policy in use.
func (s *DashboardService) Policy() UrgencyPolicy { return s.opts.Policy }

// checkUser rejects ids that would break the cache key layout.
func checkUser(userID string) error {
	if strings.TrimSpace(userID) == "" || strings.Contains(userID, "|") {
		return core.Invalid("user_id", core.ErrEmptyID)
	}
	return nil
}
