package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls atomic.Int32
	sent  int
	err   error
	ran   chan struct{}
}

func (f *fakeRunner) ProcessReminders(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if f.ran != nil {
		select {
		case f.ran <- struct{}{}:
		default:
		}
	}
	return f.sent, f.err
}

func TestNewReminderWorker_InvalidSchedule(t *testing.T) {
	_, err := NewReminderWorker(&fakeRunner{}, "every morning", time.UTC, 0, nil)
	assert.Error(t, err)

	_, err = NewReminderWorker(nil, "0 8 * * *", time.UTC, 0, nil)
	assert.Error(t, err)
}

func TestReminderWorker_RunOnce(t *testing.T) {
	r := &fakeRunner{sent: 3}
	w, err := NewReminderWorker(r, "0 8 * * *", time.UTC, time.Second, nil)
	require.NoError(t, err)

	sent, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, int32(1), r.calls.Load())

	r.err = errors.New("broker down")
	_, err = w.RunOnce(context.Background())
	assert.EqualError(t, err, "broker down")
}

func TestReminderWorker_Schedule(t *testing.T) {
	r := &fakeRunner{ran: make(chan struct{}, 1)}
	w, err := NewReminderWorker(r, "@every 1s", time.UTC, 0, nil)
	require.NoError(t, err)
	assert.True(t, w.Next().IsZero())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	assert.False(t, w.Next().IsZero())

	select {
	case <-r.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled run did not happen")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, w.Stop(stopCtx))
}
