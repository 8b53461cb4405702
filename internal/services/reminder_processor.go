package services

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/clock"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// ReminderProcessor publishes due reminders for every user's pressing
// obligations: overdue, due today, due tomorrow and due soon.
type ReminderProcessor struct {
	store     ReminderSource
	publisher EventPublisher
	clock     clock.Clock
	policy    UrgencyPolicy
	count     int
	log       *log.Logger
}

// NewReminderProcessor creates a reminder processor projecting count
// occurrences per template.
func NewReminderProcessor(store ReminderSource, publisher EventPublisher, clk clock.Clock, policy UrgencyPolicy, count int) *ReminderProcessor {
	if policy == (UrgencyPolicy{}) {
		policy = DefaultUrgencyPolicy()
	}
	if count < 1 {
		count = 1
	}
	return &ReminderProcessor{store: store, publisher: publisher, clock: clk, policy: policy, count: count, log: log.Default(log.ComponentReminder)}
}

// NeedsReminder reports whether an item sits in a tier worth a reminder.
func NeedsReminder(it UpcomingItem) bool {
	return it.Tier <= core.DueSoon
}

// ProcessReminders runs one pass over all users and returns the number of
// reminders published. A failing user is logged and skipped.
func (p *ReminderProcessor) ProcessReminders(ctx context.Context) (int, error) {
	if p.store == nil || p.publisher == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	users, err := p.store.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	today := p.clock.Today()
	p.log.InfoContext(ctx, "Processing due reminders",
		"users", len(users),
		log.FieldToday, today.String())

	sent := 0
	var errs []error
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		n, err := p.processUser(ctx, userID, today)
		sent += n
		if err != nil {
			p.log.ErrorContext(ctx, "Failed to process reminders for user", log.FieldUserID, userID, log.FieldError, err)
			errs = append(errs, err)
		}
	}

	p.log.InfoContext(ctx, "Due reminder processing complete",
		"sent", sent,
		"failed_users", len(errs))

	if len(errs) == len(users) && len(errs) > 0 {
		return sent, errors.Join(errs...)
	}
	return sent, nil
}

func (p *ReminderProcessor) processUser(ctx context.Context, userID string, today core.Date) (int, error) {
	records, err := p.store.ListRecords(ctx, userID, RecordFilter{})
	if err != nil {
		return 0, fmt.Errorf("list records for %s: %w", userID, err)
	}
	items, err := p.policy.BuildUpcoming(records, today, p.count)
	if err != nil {
		return 0, fmt.Errorf("build upcoming for %s: %w", userID, err)
	}

	sent := 0
	for _, it := range items {
		if !NeedsReminder(it) {
			continue
		}
		r := reminderFor(userID, it)
		if err := p.publisher.PublishDueReminder(ctx, r); err != nil {
			return sent, fmt.Errorf("publish reminder: %w", err)
		}
		p.log.DebugContext(ctx, "Due reminder published",
			log.FieldEventType, amqp.EventDueReminder,
			log.FieldUserID, userID,
			log.FieldRecordID, r.RecordID,
			"template_id", r.TemplateID,
			"tier", r.Tier)
		sent++
	}
	return sent, nil
}

func reminderFor(userID string, it UpcomingItem) *amqp.DueReminder {
	r := amqp.DueReminder{
		UserID:       userID,
		DueDate:      it.Date,
		DaysUntilDue: it.DaysUntilDue,
		Tier:         it.Tier.String(),
	}
	switch {
	case it.Record != nil:
		r.RecordID = it.Record.ID
		r.AmountCents = it.Record.Amount.Cents
		r.Currency = it.Record.Currency
	case it.Occurrence != nil:
		r.TemplateID = it.Occurrence.TemplateID
		r.AmountCents = it.Occurrence.Amount.Cents
	}
	return amqp.NewDueReminder(r)
}
