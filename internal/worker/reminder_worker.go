// Package worker schedules the periodic due-reminder run.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"fintrack/internal/log"
)

// ReminderRunner performs one reminder pass and reports how many reminders
// were published.
type ReminderRunner interface {
	ProcessReminders(ctx context.Context) (int, error)
}

// ReminderWorker runs a ReminderRunner on a cron schedule. Overlapping runs
// are skipped.
type ReminderWorker struct {
	cron    *cron.Cron
	runner  ReminderRunner
	logger  *log.Logger
	timeout time.Duration

	mu  sync.Mutex
	ctx context.Context
}

// NewReminderWorker parses schedule as a standard five-field cron spec
// evaluated in loc. timeout bounds a single run; zero means no bound.
func NewReminderWorker(runner ReminderRunner, schedule string, loc *time.Location, timeout time.Duration, logger *log.Logger) (*ReminderWorker, error) {
	if runner == nil {
		return nil, fmt.Errorf("reminder runner is required")
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Default(log.ComponentWorker)
	}

	cronLog := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))
	w := &ReminderWorker{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		runner:  runner,
		logger:  logger,
		timeout: timeout,
		ctx:     context.Background(),
	}
	if _, err := w.cron.AddFunc(schedule, w.scheduled); err != nil {
		return nil, fmt.Errorf("register reminder schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start begins scheduling. Runs started by the schedule inherit ctx.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()

	w.cron.Start()
	w.logger.Info("Reminder worker started", "next_run", w.Next().Format(time.RFC3339))
}

// Stop stops scheduling and waits for a running pass until ctx is done.
func (w *ReminderWorker) Stop(ctx context.Context) error {
	select {
	case <-w.cron.Stop().Done():
		w.logger.Info("Reminder worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next scheduled run, zero before Start.
func (w *ReminderWorker) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (w *ReminderWorker) scheduled() {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	_, _ = w.RunOnce(ctx)
}

// RunOnce performs a single reminder pass immediately.
func (w *ReminderWorker) RunOnce(ctx context.Context) (int, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	sent, err := w.runner.ProcessReminders(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Reminder run failed",
			log.FieldOperation, log.OpRemind,
			log.FieldError, err,
			"sent", sent)
		return sent, err
	}
	w.logger.InfoContext(ctx, "Reminder run complete",
		log.FieldOperation, log.OpRemind,
		"sent", sent,
		log.FieldDuration, time.Since(start).Milliseconds())
	return sent, nil
}
