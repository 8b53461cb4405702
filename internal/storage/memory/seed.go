package memory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fintrack/internal/core"
)

// Seed is the YAML layout of a memory store seed file.
type Seed struct {
	Records []SeedRecord `yaml:"records"`
	Budgets []SeedBudget `yaml:"budgets"`
}

type SeedRecord struct {
	ID          string `yaml:"id"`
	User        string `yaml:"user"`
	Kind        string `yaml:"kind"`
	Amount      string `yaml:"amount"` // euros, "12.50" or "12,50"
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Frequency   string `yaml:"frequency"` // recurring when set to weekly, monthly or yearly
	Template    string `yaml:"template"`
	Currency    string `yaml:"currency"`
}

type SeedBudget struct {
	User           string `yaml:"user"`
	Category       string `yaml:"category"`
	Limit          string `yaml:"limit"`
	AlertThreshold int    `yaml:"alert_threshold"`
	Enabled        *bool  `yaml:"enabled"` // defaults to true
}

const defaultUser = "default"

// NewFromFile loads a store from a YAML seed file.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return NewFromYAML(data)
}

func NewFromYAML(data []byte) (*Store, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	s := New()
	if err := s.Load(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Load adds the seed content to the store.
func (s *Store) Load(seed Seed) error {
	ctx := context.Background()
	for i, sr := range seed.Records {
		r, err := sr.record()
		if err != nil {
			return fmt.Errorf("seed record %d (%s): %w", i, sr.ID, err)
		}
		if err := s.SaveRecord(ctx, r); err != nil {
			return fmt.Errorf("seed record %d (%s): %w", i, sr.ID, err)
		}
	}
	for i, sb := range seed.Budgets {
		user, b, err := sb.budget()
		if err != nil {
			return fmt.Errorf("seed budget %d (%s): %w", i, sb.Category, err)
		}
		if err := s.SaveBudget(ctx, user, b); err != nil {
			return fmt.Errorf("seed budget %d (%s): %w", i, sb.Category, err)
		}
	}
	return nil
}

func (sr SeedRecord) record() (core.Record, error) {
	kind, err := core.ParseKind(sr.Kind)
	if err != nil {
		return core.Record{}, err
	}
	amount, err := core.ParseMoney(sr.Amount)
	if err != nil {
		return core.Record{}, err
	}
	date, err := core.ParseDate(sr.Date)
	if err != nil {
		return core.Record{}, err
	}
	freq, err := core.ParseFrequency(sr.Frequency)
	if err != nil {
		return core.Record{}, err
	}
	r := core.Record{
		ID:          sr.ID,
		UserID:      sr.User,
		Kind:        kind,
		Amount:      amount,
		Date:        date,
		Description: sr.Description,
		Status:      core.StoredStatus(sr.Status),
		IsRecurring: freq.Repeats(),
		Frequency:   freq,
		Currency:    sr.Currency,
	}
	if r.UserID == "" {
		r.UserID = defaultUser
	}
	if sr.Category != "" {
		r.CategoryID = &sr.Category
	}
	if sr.Template != "" {
		r.TemplateID = &sr.Template
	}
	return r, nil
}

func (sb SeedBudget) budget() (string, core.BudgetConfig, error) {
	limit, err := core.ParseMoney(sb.Limit)
	if err != nil {
		return "", core.BudgetConfig{}, err
	}
	user := sb.User
	if user == "" {
		user = defaultUser
	}
	enabled := true
	if sb.Enabled != nil {
		enabled = *sb.Enabled
	}
	return user, core.BudgetConfig{
		CategoryID:            sb.Category,
		Limit:                 limit,
		AlertThresholdPercent: sb.AlertThreshold,
		Enabled:               enabled,
	}, nil
}
