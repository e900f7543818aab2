package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageFixture(cfg *ServiceConfig) (*connFixture, *mockMessageRepo, *messageService) {
	f := newConnFixture(cfg, jane())
	repo := newMockMessageRepo()
	svc := NewMessageService(repo, f.svc, f.tracker, cfg, nil).(*messageService)
	svc.now = func() time.Time { return fixedNow }
	return f, repo, svc
}

func TestBuildAcaContent(t *testing.T) {
	got := BuildAcaContent("Saw your talk.", "Great demo.", "Coffee?", "Zach")
	assert.Equal(t, "Saw your talk.\n\nGreat demo.\n\nCoffee?\n\nBest\nZach", got)
}

func TestSentNoteContent(t *testing.T) {
	assert.Equal(t, "Sent message: hi...", SentNoteContent("hi"))

	long := strings.Repeat("é", 60)
	got := SentNoteContent(long)
	assert.Equal(t, "Sent message: "+strings.Repeat("é", 50)+"...", got)
}

func TestCreateAcaMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("default signature", func(t *testing.T) {
		_, repo, svc := newMessageFixture(&ServiceConfig{})
		msg, err := svc.CreateAcaMessage(ctx, "c1", "a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, domain.MessageStatusDraft, msg.Status)
		assert.Equal(t, domain.TemplateACA, msg.Template)
		assert.True(t, strings.HasSuffix(msg.Content, "Best\nZach"))
		require.NotNil(t, msg.Metadata)
		assert.Equal(t, "c", msg.Metadata.Ask)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("configured signature", func(t *testing.T) {
		_, _, svc := newMessageFixture(&ServiceConfig{App: AppServiceConfig{Signature: "Sam"}})
		msg, err := svc.CreateAcaMessage(ctx, "c1", "a", "b", "c")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(msg.Content, "Best\nSam"))
	})

	t.Run("unknown connection", func(t *testing.T) {
		_, _, svc := newMessageFixture(&ServiceConfig{})
		_, err := svc.CreateAcaMessage(ctx, "nope", "a", "b", "c")
		assertCode(t, err, code.ErrorConnectionNotFound)
	})
}

func TestComposeCustomMessage(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newMessageFixture(&ServiceConfig{})

	msg, err := svc.ComposeCustomMessage(ctx, "c1", "Hello there")
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateCustom, msg.Template)
	assert.Nil(t, msg.Metadata)

	_, err = svc.ComposeCustomMessage(ctx, "c1", " ")
	assertCode(t, err, code.ErrorInvalidParams)
}

func TestMarkMessageAsSent(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades status note and counter", func(t *testing.T) {
		f, _, svc := newMessageFixture(&ServiceConfig{})
		f.reminders.rows = []*domain.Reminder{{ID: "r1", ConnectionID: "c1", Title: "follow up", DueDate: fixedNow}}

		draft, err := svc.ComposeCustomMessage(ctx, "c1", "Hello there")
		require.NoError(t, err)

		sent, err := svc.MarkMessageAsSent(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MessageStatusSent, sent.Status)
		require.NotNil(t, sent.SentAt)

		c, _ := f.conns.GetByID(ctx, "c1")
		assert.Equal(t, domain.StatusContacted, c.Status)
		assert.True(t, f.reminders.find("r1").Completed)
		assert.True(t, f.tracker.has(domain.ActionMessageSent))

		notes, _ := f.notes.ListByConnection(ctx, "c1")
		require.Len(t, notes, 1)
		assert.Equal(t, domain.NoteTypeMessageSent, notes[0].Type)
		assert.Equal(t, "Sent message: Hello there...", notes[0].Content)
	})

	t.Run("already sent is unchanged", func(t *testing.T) {
		f, repo, svc := newMessageFixture(&ServiceConfig{})
		sentAt := fixedNow.Add(-time.Hour)
		repo.rows["m1"] = &domain.Message{ID: "m1", ConnectionID: "c1", Content: "x", Status: domain.MessageStatusSent, SentAt: &sentAt}

		got, err := svc.MarkMessageAsSent(ctx, "m1")
		require.NoError(t, err)
		assert.True(t, got.SentAt.Equal(sentAt))
		assert.Empty(t, f.notes.notes)
		assert.False(t, f.tracker.has(domain.ActionMessageSent))
	})

	t.Run("unknown message", func(t *testing.T) {
		_, _, svc := newMessageFixture(&ServiceConfig{})
		_, err := svc.MarkMessageAsSent(ctx, "missing")
		assertCode(t, err, code.ErrorMessageNotFound)
	})
}
