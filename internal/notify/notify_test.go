package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/quotedprintable"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeHub struct {
	frames [][]byte
}

func (h *fakeHub) Broadcast(payload []byte) int {
	h.frames = append(h.frames, payload)
	return 1
}

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (s *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) Name() string { return "failing" }

func (f *failingNotifier) Notify(ctx context.Context, batch []Notification) error {
	f.calls++
	return errors.New("down")
}

var batch = []Notification{
	{ReminderID: "r1", Title: "Reminder: call Jane", Body: "Due today", URL: "/connection/c1"},
	{ReminderID: "r2", Title: "Reminder: <ping> Bob", Body: "about the role", URL: "/connection/c2"},
}

func TestWebsocketNotifierFrames(t *testing.T) {
	hub := &fakeHub{}
	n := NewWebsocketNotifier(hub, nil)
	require.NoError(t, n.Notify(context.Background(), batch))
	require.Len(t, hub.frames, 2)

	var got frame
	require.NoError(t, sonic.Unmarshal(hub.frames[0], &got))
	assert.Equal(t, FrameTypeReminder, got.Type)
	assert.Equal(t, batch[0], got.Notification)
}

func TestMailNotifierDigest(t *testing.T) {
	s := &fakeSender{}
	n := NewMailNotifierWithSender(MailConfig{From: "crm@example.com", To: []string{"me@example.com"}, BaseURL: "http://localhost:3000"}, s, nil)

	require.NoError(t, n.Notify(context.Background(), batch))
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"2 reminders due"}, s.sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := s.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	decoded, err := io.ReadAll(quotedprintable.NewReader(&buf))
	require.NoError(t, err)
	body := string(decoded)
	assert.True(t, strings.Contains(body, "call Jane"))
	assert.True(t, strings.Contains(body, "&lt;ping&gt;"))
}

func TestMailNotifierErrors(t *testing.T) {
	n := NewMailNotifierWithSender(MailConfig{From: "a@example.com"}, &fakeSender{}, nil)
	assert.Error(t, n.Notify(context.Background(), batch))

	n = NewMailNotifierWithSender(MailConfig{From: "a@example.com", To: []string{"b@example.com"}}, &fakeSender{err: errors.New("smtp down")}, nil)
	assert.Error(t, n.Notify(context.Background(), batch))

	assert.NoError(t, n.Notify(context.Background(), nil))
}

func TestFanoutContinuesAfterFailure(t *testing.T) {
	bad := &failingNotifier{}
	hub := &fakeHub{}
	f := NewFanout(nil, bad, nil, NewWebsocketNotifier(hub, nil))
	assert.Equal(t, 2, f.Len())

	err := f.Notify(context.Background(), batch)
	assert.Error(t, err)
	assert.Equal(t, 1, bad.calls)
	assert.Len(t, hub.frames, 2)

	assert.NoError(t, f.Notify(context.Background(), nil))
	assert.Equal(t, 1, bad.calls)
}

func TestDigestSubject(t *testing.T) {
	assert.Equal(t, "1 reminder due", DigestSubject(1))
	assert.Equal(t, "3 reminders due", DigestSubject(3))
}
