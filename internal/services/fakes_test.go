package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

type fakeStore struct {
	mu        sync.Mutex
	records   map[string]core.Record
	budgets   map[string][]core.BudgetConfig
	listCalls int
	listErr   error
	saveErr   error
}

func newFakeStore(records ...core.Record) *fakeStore {
	s := &fakeStore{records: map[string]core.Record{}, budgets: map[string][]core.BudgetConfig{}}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeStore) ListRecords(_ context.Context, userID string, f RecordFilter) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []core.Record
	for _, r := range s.records {
		if r.UserID == userID && f.Match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) GetRecord(_ context.Context, userID, id string) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok || r.UserID != userID {
		return core.Record{}, core.ErrNotFound
	}
	return r, nil
}

func (s *fakeStore) SaveRecord(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[r.ID] = r
	return nil
}

func (s *fakeStore) Budget(_ context.Context, userID, categoryID string) (core.BudgetConfig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets[userID] {
		if b.CategoryID == categoryID {
			return b, true, nil
		}
	}
	return core.BudgetConfig{}, false, nil
}

func (s *fakeStore) ListBudgets(_ context.Context, userID string) ([]core.BudgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets[userID], nil
}

func (s *fakeStore) ListUsers(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, r := range s.records {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			out = append(out, r.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	events    []*amqp.ObligationEvent
	reminders []*amqp.DueReminder
	err       error
}

func (p *fakePublisher) PublishObligationEvent(_ context.Context, e *amqp.ObligationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) PublishDueReminder(_ context.Context, r *amqp.DueReminder) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.reminders = append(p.reminders, r)
	return nil
}

var errBroker = errors.New("connection refused")
