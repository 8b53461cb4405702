package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// Event types carried in the Publishing.Type header and the message body.
const (
	EventRecordPaid      = "record.paid"
	EventRecordPostponed = "record.postponed"
	EventDueReminder     = "reminder.due"
)

// ObligationEvent announces a status transition applied to a stored record.
type ObligationEvent struct {
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	UserID       string    `json:"user_id"`
	RecordID     string    `json:"record_id"`
	Date         core.Date `json:"date"`
	PreviousDate core.Date `json:"previous_date"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewObligationEvent creates an event with a fresh id.
func NewObligationEvent(eventType, userID, recordID string, date core.Date) *ObligationEvent {
	return &ObligationEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		RecordID:  recordID,
		Date:      date,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ObligationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ObligationEventFromJSON creates an event from JSON bytes
func ObligationEventFromJSON(data []byte) (*ObligationEvent, error) {
	var msg ObligationEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DueReminder asks downstream notifiers to remind a user of an obligation.
// Exactly one of RecordID and TemplateID is set.
type DueReminder struct {
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	RecordID     string    `json:"record_id,omitempty"`
	TemplateID   string    `json:"template_id,omitempty"`
	DueDate      core.Date `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`
	Tier         string    `json:"tier"`
	AmountCents  int64     `json:"amount_cents"`
	Currency     string    `json:"currency,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewDueReminder fills in the id and timestamp.
func NewDueReminder(r DueReminder) *DueReminder {
	r.EventID = uuid.NewString()
	r.Timestamp = time.Now()
	return &r
}

// ToJSON converts the message to JSON bytes
func (m *DueReminder) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DueReminderFromJSON creates a reminder from JSON bytes
func DueReminderFromJSON(data []byte) (*DueReminder, error) {
	var msg DueReminder
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
