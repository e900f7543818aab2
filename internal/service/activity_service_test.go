package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeline(t *testing.T) {
	base := fixedNow
	sentAt := base.Add(2 * time.Hour)
	long := strings.Repeat("x", 150)

	notes := []*domain.Note{
		{ID: "n1", ConnectionID: "c1", Content: "first note", Type: domain.NoteTypeNote, CreatedAt: base},
		{ID: "n2", ConnectionID: "c1", Content: SentNoteContent("Hello there"), Type: domain.NoteTypeMessageSent, CreatedAt: sentAt},
	}
	messages := []*domain.Message{
		{ID: "m1", ConnectionID: "c1", Content: "Hello there", Status: domain.MessageStatusSent, CreatedAt: base.Add(time.Hour), SentAt: &sentAt},
		{ID: "m2", ConnectionID: "c1", Content: long, Status: domain.MessageStatusDraft, CreatedAt: base.Add(3 * time.Hour)},
	}
	reminders := []*domain.Reminder{
		{ID: "r1", ConnectionID: "c1", Title: "ping", CreatedAt: base.Add(4 * time.Hour)},
		{ID: "r2", ConnectionID: "c1", Title: "call", Completed: true, CreatedAt: base.Add(-time.Hour)},
	}

	got := BuildTimeline(notes, messages, reminders)

	var order []string
	for _, a := range got {
		order = append(order, a.ID)
	}
	assert.Equal(t, []string{"r1", "m2", "n2", "n1", "r2"}, order)

	assert.Equal(t, "Reminder: ping", got[0].Content)
	assert.Equal(t, string(domain.ActivityReminderCreated), got[0].Type)
	assert.Equal(t, strings.Repeat("x", 100)+"...", got[1].Content)
	assert.Equal(t, string(domain.MessageStatusDraft), got[1].Status)
	assert.Equal(t, "Reminder: call (Completed)", got[4].Content)
	assert.Equal(t, string(domain.ActivityReminderCompleted), got[4].Type)
}

func TestBuildTimelineKeepsUnquotedSentMessage(t *testing.T) {
	sentAt := fixedNow
	got := BuildTimeline(nil, []*domain.Message{
		{ID: "m1", Content: "Hi", Status: domain.MessageStatusSent, CreatedAt: fixedNow.Add(-time.Hour), SentAt: &sentAt},
	}, nil)
	require.Len(t, got, 1)
	assert.True(t, got[0].CreatedAt.Equal(sentAt))
}

func TestBuildTimelineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genNotes := gen.SliceOf(gen.Int64Range(0, 1_000_000)).Map(func(offsets []int64) []*domain.Note {
		out := make([]*domain.Note, len(offsets))
		for i, o := range offsets {
			out[i] = &domain.Note{ID: "n", Content: "note", Type: domain.NoteTypeNote, CreatedAt: fixedNow.Add(time.Duration(o) * time.Second)}
		}
		return out
	})
	genReminders := gen.SliceOf(gen.Int64Range(0, 1_000_000)).Map(func(offsets []int64) []*domain.Reminder {
		out := make([]*domain.Reminder, len(offsets))
		for i, o := range offsets {
			out[i] = &domain.Reminder{ID: "r", Title: "t", CreatedAt: fixedNow.Add(time.Duration(o) * time.Second)}
		}
		return out
	})

	properties.Property("newest first and nothing lost", prop.ForAll(
		func(notes []*domain.Note, rems []*domain.Reminder) bool {
			got := BuildTimeline(notes, nil, rems)
			if len(got) != len(notes)+len(rems) {
				return false
			}
			for i := 1; i < len(got); i++ {
				if got[i].CreatedAt.After(got[i-1].CreatedAt) {
					return false
				}
			}
			return true
		},
		genNotes, genReminders,
	))

	properties.TestingRun(t)
}

func TestGetConnectionActivityUnknownConnection(t *testing.T) {
	f, _, msgSvc := newMessageFixture(&ServiceConfig{})
	svc := NewActivityService(f.svc, msgSvc, f.remSvc)

	_, err := svc.GetConnectionActivity(context.Background(), "nope")
	assertCode(t, err, code.ErrorConnectionNotFound)

	list, err := svc.GetConnectionActivity(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
