package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/services"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for unknown records.
var ErrNotFound = core.ErrNotFound

type SQLiteRepository struct {
	db *sql.DB
}

var _ services.RecordStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const recordColumns = `id, user_id, kind, amount_cents, date, category_id, description,
	stored_status, is_recurring, frequency, template_id, currency`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec        core.Record
		categoryID sql.NullString
		templateID sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Amount.Cents, &rec.Date, &categoryID,
		&rec.Description, &rec.Status, &rec.IsRecurring, &rec.Frequency, &templateID, &rec.Currency)
	if err != nil {
		return core.Record{}, err
	}
	if categoryID.Valid {
		rec.CategoryID = &categoryID.String
	}
	if templateID.Valid {
		rec.TemplateID = &templateID.String
	}
	return rec, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// ListRecords implements services.RecordFetcher
func (r *SQLiteRepository) ListRecords(ctx context.Context, userID string, filter services.RecordFilter) ([]core.Record, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.To.String())
	}
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(filter.Kind))
	}

	query := "SELECT " + recordColumns + " FROM records WHERE " + strings.Join(where, " AND ") + " ORDER BY date, id"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// GetRecord implements services.RecordWriter
func (r *SQLiteRepository) GetRecord(ctx context.Context, userID, recordID string) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE user_id = ? AND id = ?", userID, recordID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, fmt.Errorf("record %s: %w", recordID, ErrNotFound)
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// SaveRecord inserts or replaces a record.
func (r *SQLiteRepository) SaveRecord(ctx context.Context, rec core.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.Frequency == "" {
		rec.Frequency = core.None
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			kind = excluded.kind,
			amount_cents = excluded.amount_cents,
			date = excluded.date,
			category_id = excluded.category_id,
			description = excluded.description,
			stored_status = excluded.stored_status,
			is_recurring = excluded.is_recurring,
			frequency = excluded.frequency,
			template_id = excluded.template_id,
			currency = excluded.currency,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.UserID, string(rec.Kind), rec.Amount.Cents, rec.Date.String(), nullable(rec.CategoryID),
		rec.Description, string(rec.Status), rec.IsRecurring, string(rec.Frequency), nullable(rec.TemplateID), rec.Currency)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}

	slog.DebugContext(ctx, "Record saved to SQLite",
		"id", rec.ID,
		"user_id", rec.UserID,
		"date", rec.Date.String(),
		"stored_status", rec.Status)
	return nil
}

// Budget implements services.BudgetLookup
func (r *SQLiteRepository) Budget(ctx context.Context, userID, categoryID string) (core.BudgetConfig, bool, error) {
	var b core.BudgetConfig
	err := r.db.QueryRowContext(ctx, `
		SELECT category_id, limit_cents, alert_threshold_percent, enabled
		FROM budgets WHERE user_id = ? AND category_id = ?`, userID, categoryID).
		Scan(&b.CategoryID, &b.Limit.Cents, &b.AlertThresholdPercent, &b.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BudgetConfig{}, false, nil
	}
	if err != nil {
		return core.BudgetConfig{}, false, fmt.Errorf("get budget: %w", err)
	}
	return b, true, nil
}

// ListBudgets implements services.BudgetLookup
func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID string) ([]core.BudgetConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category_id, limit_cents, alert_threshold_percent, enabled
		FROM budgets WHERE user_id = ? ORDER BY category_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.BudgetConfig
	for rows.Next() {
		var b core.BudgetConfig
		if err := rows.Scan(&b.CategoryID, &b.Limit.Cents, &b.AlertThresholdPercent, &b.Enabled); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

// SaveBudget inserts or replaces a budget configuration.
func (r *SQLiteRepository) SaveBudget(ctx context.Context, userID string, b core.BudgetConfig) error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return core.Invalid("category_id", core.ErrEmptyID)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category_id, limit_cents, alert_threshold_percent, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category_id) DO UPDATE SET
			limit_cents = excluded.limit_cents,
			alert_threshold_percent = excluded.alert_threshold_percent,
			enabled = excluded.enabled,
			updated_at = CURRENT_TIMESTAMP`,
		userID, b.CategoryID, b.Limit.Cents, b.AlertThresholdPercent, b.Enabled)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

// ListUsers implements services.UserLister
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM records ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
