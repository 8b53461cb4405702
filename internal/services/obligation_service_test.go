package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/amqp"
	"fintrack/internal/clock"
	"fintrack/internal/core"
)

func newObligationFixture(pub EventPublisher) (*ObligationService, *fakeStore) {
	store := newFakeStore(
		withStatus(expense("rent", 90000, "2025-03-05", "home"), core.StatusPending),
		withStatus(expense("paid", 500, "2025-03-01", "food"), core.StatusPaid),
	)
	return NewObligationService(store, pub, clock.Fixed(d("2025-03-20")), UrgencyPolicy{}), store
}

func TestObligationService_Status(t *testing.T) {
	svc, _ := newObligationFixture(nil)

	st, err := svc.Status(context.Background(), "u1", "rent")
	require.NoError(t, err)
	assert.Equal(t, core.EffectiveOverdue, st.Status)
	assert.Equal(t, -15, st.DaysUntilDue)
	assert.Equal(t, core.Overdue, st.Tier)

	_, err = svc.Status(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Status(context.Background(), "someone-else", "rent")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestObligationService_MarkPaid(t *testing.T) {
	pub := &fakePublisher{}
	svc, store := newObligationFixture(pub)
	var invalidated []string
	svc.OnChange(func(userID string) { invalidated = append(invalidated, userID) })

	st, err := svc.MarkPaid(context.Background(), "u1", "rent")
	require.NoError(t, err)
	assert.Equal(t, core.EffectivePaid, st.Status)
	assert.Equal(t, core.StatusPaid, store.records["rent"].Status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, amqp.EventRecordPaid, pub.events[0].Type)
	assert.Equal(t, "rent", pub.events[0].RecordID)
	assert.Equal(t, []string{"u1"}, invalidated)

	// paying again is a no-op
	st, err = svc.MarkPaid(context.Background(), "u1", "rent")
	require.NoError(t, err)
	assert.Equal(t, core.EffectivePaid, st.Status)
	assert.Len(t, pub.events, 1)
}

func TestObligationService_MarkPaid_PublishFailureIsNotFatal(t *testing.T) {
	svc, store := newObligationFixture(&fakePublisher{err: errBroker})

	_, err := svc.MarkPaid(context.Background(), "u1", "rent")
	require.NoError(t, err)
	assert.Equal(t, core.StatusPaid, store.records["rent"].Status)
}

func TestObligationService_MarkPaid_NoPublisher(t *testing.T) {
	svc, store := newObligationFixture(nil)

	_, err := svc.MarkPaid(context.Background(), "u1", "rent")
	require.NoError(t, err)
	assert.Equal(t, core.StatusPaid, store.records["rent"].Status)
}

func TestObligationService_Postpone(t *testing.T) {
	pub := &fakePublisher{}
	svc, store := newObligationFixture(pub)
	ctx := context.Background()

	_, err := svc.Postpone(ctx, "u1", "rent", d("2025-03-20"))
	assert.ErrorIs(t, err, core.ErrPostponeNotFuture)
	assert.True(t, core.IsValidation(err))
	assert.Empty(t, pub.events)

	st, err := svc.Postpone(ctx, "u1", "rent", d("2025-03-21"))
	require.NoError(t, err)
	assert.Equal(t, core.EffectivePending, st.Status)
	assert.Equal(t, core.DueTomorrow, st.Tier)
	assert.Equal(t, core.StatusPending, store.records["rent"].Status)
	assert.Equal(t, "2025-03-21", store.records["rent"].Date.String())

	require.Len(t, pub.events, 1)
	assert.Equal(t, amqp.EventRecordPostponed, pub.events[0].Type)
	assert.Equal(t, "2025-03-05", pub.events[0].PreviousDate.String())
}

func TestObligationService_SaveError(t *testing.T) {
	pub := &fakePublisher{}
	svc, store := newObligationFixture(pub)
	store.saveErr = errors.New("read-only")

	_, err := svc.MarkPaid(context.Background(), "u1", "rent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save record rent")
	assert.Empty(t, pub.events)
}
