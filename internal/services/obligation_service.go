package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/clock"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// RecordStatus is the derived state of one stored record.
type RecordStatus struct {
	Record       core.Record          `json:"record"`
	Status       core.EffectiveStatus `json:"status"`
	DaysUntilDue int                  `json:"days_until_due"`
	Tier         core.UrgencyTier     `json:"urgency_tier"`
}

// ObligationService applies status transitions to stored records and
// announces them on the event bus.
type ObligationService struct {
	store      RecordWriter
	publisher  EventPublisher
	clock      clock.Clock
	policy     UrgencyPolicy
	invalidate func(userID string)
	log        *log.StructuredLogger
}

// NewObligationService wires a transition service. publisher may be nil, in
// which case events are skipped with a warning.
func NewObligationService(store RecordWriter, publisher EventPublisher, clk clock.Clock, policy UrgencyPolicy) *ObligationService {
	if policy == (UrgencyPolicy{}) {
		policy = DefaultUrgencyPolicy()
	}
	return &ObligationService{
		store:     store,
		publisher: publisher,
		clock:     clk,
		policy:    policy,
		log:       log.NewStructuredLogger(log.Default(log.ComponentObligation)),
	}
}

// OnChange registers a callback run after every successful transition,
// typically DashboardService.Invalidate.
func (s *ObligationService) OnChange(fn func(userID string)) {
	s.invalidate = fn
}

// Status classifies a stored record against today.
func (s *ObligationService) Status(ctx context.Context, userID, recordID string) (RecordStatus, error) {
	r, err := s.store.GetRecord(ctx, userID, recordID)
	if err != nil {
		return RecordStatus{}, fmt.Errorf("get record %s: %w", recordID, err)
	}
	return s.describe(r, s.clock.Today()), nil
}

func (s *ObligationService) describe(r core.Record, today core.Date) RecordStatus {
	days := today.DaysUntil(r.Date)
	return RecordStatus{
		Record:       r,
		Status:       Classify(r, today),
		DaysUntilDue: days,
		Tier:         s.policy.Rank(days),
	}
}

// MarkPaid sets the stored status of a record to paid. Paying an already
// paid record is a no-op and publishes nothing.
func (s *ObligationService) MarkPaid(ctx context.Context, userID, recordID string) (RecordStatus, error) {
	r, err := s.store.GetRecord(ctx, userID, recordID)
	if err != nil {
		return RecordStatus{}, fmt.Errorf("get record %s: %w", recordID, err)
	}
	today := s.clock.Today()
	if r.IsPaid() {
		return s.describe(r, today), nil
	}

	paid := MarkAsPaid(r)
	if err := s.store.SaveRecord(ctx, paid); err != nil {
		return RecordStatus{}, fmt.Errorf("save record %s: %w", recordID, err)
	}
	s.log.LogTransition(ctx, log.OpPay, userID, recordID, paid.Amount.Cents, string(paid.Status))

	s.changed(ctx, amqp.NewObligationEvent(amqp.EventRecordPaid, userID, recordID, paid.Date))
	return s.describe(paid, today), nil
}

// Postpone moves a record to newDate, which must be after today.
func (s *ObligationService) Postpone(ctx context.Context, userID, recordID string, newDate core.Date) (RecordStatus, error) {
	r, err := s.store.GetRecord(ctx, userID, recordID)
	if err != nil {
		return RecordStatus{}, fmt.Errorf("get record %s: %w", recordID, err)
	}
	today := s.clock.Today()

	moved, err := Postpone(r, newDate, today)
	if err != nil {
		return RecordStatus{}, err
	}
	if err := s.store.SaveRecord(ctx, moved); err != nil {
		return RecordStatus{}, fmt.Errorf("save record %s: %w", recordID, err)
	}
	s.log.LogTransition(ctx, log.OpPostpone, userID, recordID, moved.Amount.Cents, string(moved.Status))

	event := amqp.NewObligationEvent(amqp.EventRecordPostponed, userID, recordID, moved.Date)
	event.PreviousDate = r.Date
	s.changed(ctx, event)
	return s.describe(moved, today), nil
}

func (s *ObligationService) changed(ctx context.Context, event *amqp.ObligationEvent) {
	if s.invalidate != nil {
		s.invalidate(event.UserID)
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping obligation event", "type", event.Type)
		return
	}
	// The record is already saved; a failed publish must not fail the request.
	if err := s.publisher.PublishObligationEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish obligation event",
			"event_id", event.EventID,
			"type", event.Type,
			"record_id", event.RecordID,
			"error", err)
	}
}
