// Package memory is an in-process record store for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type Store struct {
	mu      sync.RWMutex
	records map[string]core.Record
	budgets map[string]map[string]core.BudgetConfig // user -> category -> budget
}

var _ services.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{
		records: map[string]core.Record{},
		budgets: map[string]map[string]core.BudgetConfig{},
	}
}

// ListRecords returns a user's records ordered by date then id.
func (s *Store) ListRecords(_ context.Context, userID string, filter services.RecordFilter) ([]core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Record
	for _, r := range s.records {
		if r.UserID == userID && filter.Match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Date.Compare(out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetRecord(_ context.Context, userID, recordID string) (core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[recordID]
	if !ok || r.UserID != userID {
		return core.Record{}, fmt.Errorf("record %s: %w", recordID, core.ErrNotFound)
	}
	return r, nil
}

// SaveRecord stores the record, replacing one with the same id.
func (s *Store) SaveRecord(_ context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Frequency == "" {
		r.Frequency = core.None
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
	return nil
}

func (s *Store) Budget(_ context.Context, userID, categoryID string) (core.BudgetConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[userID][categoryID]
	return b, ok, nil
}

func (s *Store) ListBudgets(_ context.Context, userID string) ([]core.BudgetConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.BudgetConfig, 0, len(s.budgets[userID]))
	for _, b := range s.budgets[userID] {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

func (s *Store) SaveBudget(_ context.Context, userID string, b core.BudgetConfig) error {
	if b.CategoryID == "" {
		return core.Invalid("category_id", core.ErrEmptyID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.budgets[userID] == nil {
		s.budgets[userID] = map[string]core.BudgetConfig{}
	}
	s.budgets[userID][b.CategoryID] = b
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, r := range s.records {
		seen[r.UserID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for u := range seen {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Close() error { return nil }
