package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/notify"
	"github.com/zachlandes/2ml-crm/internal/service"
	"github.com/zachlandes/2ml-crm/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReminders struct {
	service.ReminderService
	today   []*domain.Reminder
	overdue []*domain.Reminder
	err     error
}

func (s *stubReminders) GetTodayReminders(ctx context.Context) ([]*domain.Reminder, error) {
	return s.today, s.err
}

func (s *stubReminders) GetOverdueReminders(ctx context.Context) ([]*domain.Reminder, error) {
	return s.overdue, s.err
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]notify.Notification
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) Notify(ctx context.Context, batch []notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, batch)
	return nil
}

func TestReminderCheckDedupesPerDay(t *testing.T) {
	ctx := context.Background()
	rems := &stubReminders{
		today:   []*domain.Reminder{{ID: "r1", ConnectionID: "c1", Title: "call"}},
		overdue: []*domain.Reminder{{ID: "r0", ConnectionID: "c2", Title: "email", Description: "about the role"}},
	}
	rec := &recordingNotifier{}
	task := NewReminderCheckTask(rems, rec, ReminderCheckConfig{}, nil)

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.Local)
	task.now = func() time.Time { return now }

	require.NoError(t, task.Run(ctx))
	require.Len(t, rec.batches, 1)
	assert.Equal(t, []notify.Notification{
		{ReminderID: "r0", Title: "Reminder: email", Body: "about the role", URL: "/connection/c2"},
		{ReminderID: "r1", Title: "Reminder: call", Body: "Due today", URL: "/connection/c1"},
	}, rec.batches[0])

	now = now.Add(3 * time.Hour)
	require.NoError(t, task.Run(ctx))
	assert.Len(t, rec.batches, 1)

	rems.today = append(rems.today, &domain.Reminder{ID: "r2", ConnectionID: "c1", Title: "lunch"})
	require.NoError(t, task.Run(ctx))
	require.Len(t, rec.batches, 2)
	assert.Equal(t, "r2", rec.batches[1][0].ReminderID)

	now = now.AddDate(0, 0, 1)
	require.NoError(t, task.Run(ctx))
	require.Len(t, rec.batches, 3)
	assert.Len(t, rec.batches[2], 3)
}

func TestReminderCheckLoadError(t *testing.T) {
	task := NewReminderCheckTask(&stubReminders{err: errors.New("db gone")}, &recordingNotifier{}, ReminderCheckConfig{}, nil)
	assert.Error(t, task.Run(context.Background()))
	assert.Equal(t, defaultReminderCheckInterval, task.LoopInterval())
}

type countingTask struct {
	runs     atomic.Int32
	interval time.Duration
	startup  bool
	panics   bool
}

func (c *countingTask) Name() string                { return "counting" }
func (c *countingTask) LoopInterval() time.Duration { return c.interval }
func (c *countingTask) IsStartupRun() bool          { return c.startup }
func (c *countingTask) Run(ctx context.Context) error {
	c.runs.Add(1)
	if c.panics {
		panic("boom")
	}
	return nil
}

func TestSchedulerRunsAndStops(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(nil, sc)
	task := &countingTask{interval: 10 * time.Millisecond, startup: true}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestSchedulerRecoversPanics(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(nil, sc)
	task := &countingTask{interval: 10 * time.Millisecond, panics: true}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}
