package service

import (
	"context"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []*domain.Reminder) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func TestTodayAndOverdueBounds(t *testing.T) {
	ctx := context.Background()
	f := newConnFixture(nil, jane())

	midnight := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 0, 0, 0, 0, time.Local)
	f.reminders.rows = []*domain.Reminder{
		{ID: "yesterday", ConnectionID: "c1", DueDate: midnight.Add(-time.Minute)},
		{ID: "midnight", ConnectionID: "c1", DueDate: midnight},
		{ID: "tonight", ConnectionID: "c1", DueDate: midnight.Add(23*time.Hour + 59*time.Minute)},
		{ID: "tomorrow", ConnectionID: "c1", DueDate: midnight.AddDate(0, 0, 1)},
		{ID: "done", ConnectionID: "c1", DueDate: midnight.Add(time.Hour), Completed: true},
	}

	today, err := f.remSvc.GetTodayReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"midnight", "tonight"}, ids(today))

	overdue, err := f.remSvc.GetOverdueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"yesterday"}, ids(overdue))

	upcoming, err := f.remSvc.GetUpcomingReminders(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"midnight", "tonight"}, ids(upcoming))
}

func TestCreateReminder(t *testing.T) {
	ctx := context.Background()
	due := fixedNow.Add(48 * time.Hour)

	tests := []struct {
		name   string
		connID string
		title  string
		due    time.Time
		want   *code.Code
	}{
		{"missing title", "c1", " ", due, code.ErrorReminderFieldsEmpty},
		{"missing due", "c1", "ping", time.Time{}, code.ErrorReminderFieldsEmpty},
		{"missing connection id", "", "ping", due, code.ErrorReminderFieldsEmpty},
		{"unknown connection", "nope", "ping", due, code.ErrorConnectionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConnFixture(nil, jane())
			_, err := f.remSvc.CreateReminder(ctx, tt.connID, tt.title, tt.due, "")
			assertCode(t, err, tt.want)
		})
	}

	t.Run("ok", func(t *testing.T) {
		f := newConnFixture(nil, jane())
		r, err := f.remSvc.CreateReminder(ctx, "c1", "ping", due, "about the role")
		require.NoError(t, err)
		assert.False(t, r.Completed)
		assert.True(t, f.tracker.has(domain.ActionReminderCreated))
	})
}

func TestCompleteAndUpdateReminder(t *testing.T) {
	ctx := context.Background()
	f := newConnFixture(nil, jane())
	f.reminders.rows = []*domain.Reminder{{ID: "r1", ConnectionID: "c1", Title: "old", DueDate: fixedNow}}

	r, err := f.remSvc.CompleteReminder(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, r.Completed)
	require.NotNil(t, r.CompletedAt)
	assert.True(t, f.tracker.has(domain.ActionReminderCompleted))

	r, err = f.remSvc.UncompleteReminder(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, r.Completed)
	assert.Nil(t, r.CompletedAt)

	title := "new"
	r, err = f.remSvc.UpdateReminder(ctx, "r1", domain.ReminderUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", r.Title)

	blank := ""
	_, err = f.remSvc.UpdateReminder(ctx, "r1", domain.ReminderUpdate{Title: &blank})
	assertCode(t, err, code.ErrorReminderFieldsEmpty)

	_, err = f.remSvc.CompleteReminder(ctx, "missing")
	assertCode(t, err, code.ErrorReminderNotFound)
}
