package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)

func assertCode(t *testing.T, err error, want *code.Code) {
	t.Helper()
	require.Error(t, err)
	var c *code.Code
	require.True(t, errors.As(err, &c), "expected *code.Code, got %T", err)
	assert.Equal(t, want.Code(), c.Code())
}

type connFixture struct {
	conns     *mockConnectionRepo
	notes     *mockNoteRepo
	reminders *mockReminderRepo
	tracker   *recordingTracker
	svc       *connectionService
	remSvc    *reminderService
}

func newConnFixture(cfg *ServiceConfig, conns ...*domain.Connection) *connFixture {
	f := &connFixture{
		conns:     newMockConnectionRepo(conns...),
		notes:     &mockNoteRepo{},
		reminders: &mockReminderRepo{},
		tracker:   &recordingTracker{},
	}
	if cfg == nil {
		cfg = &ServiceConfig{}
	}
	f.remSvc = NewReminderService(f.reminders, f.conns, f.tracker, cfg).(*reminderService)
	f.remSvc.now = func() time.Time { return fixedNow }
	f.svc = NewConnectionService(f.conns, f.notes, f.remSvc, f.tracker, cfg, nil).(*connectionService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func jane() *domain.Connection {
	return &domain.Connection{ID: "c1", FirstName: "Jane", LastName: "Doe", Status: domain.StatusNew}
}

func TestUpdateConnectionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("clears open reminders", func(t *testing.T) {
		f := newConnFixture(nil, jane())
		f.reminders.rows = []*domain.Reminder{
			{ID: "r1", ConnectionID: "c1", Title: "a", DueDate: fixedNow},
			{ID: "r2", ConnectionID: "c1", Title: "b", DueDate: fixedNow},
			{ID: "r3", ConnectionID: "c1", Title: "c", DueDate: fixedNow, Completed: true},
			{ID: "r4", ConnectionID: "other", Title: "d", DueDate: fixedNow},
		}

		res, err := f.svc.UpdateConnectionStatus(ctx, "c1", domain.StatusContacted)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.ClearedReminders)
		assert.Equal(t, domain.StatusContacted, res.Connection.Status)
		require.NotNil(t, res.Connection.LastContactedAt)
		assert.True(t, f.tracker.has(domain.ActionStatusUpdated))
		assert.False(t, f.reminders.find("r4").Completed)
	})

	tests := []struct {
		name   string
		id     string
		status domain.ConnectionStatus
		setup  func(f *connFixture)
		want   *code.Code
	}{
		{name: "invalid status", id: "c1", status: "archived", want: code.ErrorInvalidStatus},
		{name: "unknown connection", id: "nope", status: domain.StatusContacted, want: code.ErrorConnectionNotFound},
		{
			name: "status write fails", id: "c1", status: domain.StatusContacted,
			setup: func(f *connFixture) { f.conns.statusErr = errors.New("disk full") },
			want:  code.ErrorStatusUpdateFailed,
		},
		{
			name: "reminder clear fails", id: "c1", status: domain.StatusResponded,
			setup: func(f *connFixture) { f.reminders.clearErr = errors.New("locked") },
			want:  code.ErrorReminderClearFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConnFixture(nil, jane())
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.svc.UpdateConnectionStatus(ctx, tt.id, tt.status)
			assertCode(t, err, tt.want)
		})
	}

	t.Run("status persists when reminder clear fails", func(t *testing.T) {
		f := newConnFixture(nil, jane())
		f.reminders.clearErr = errors.New("locked")
		_, err := f.svc.UpdateConnectionStatus(ctx, "c1", domain.StatusResponded)
		require.Error(t, err)
		c, _ := f.conns.GetByID(ctx, "c1")
		assert.Equal(t, domain.StatusResponded, c.Status)
	})
}

func TestUpdateConnectionNotes(t *testing.T) {
	ctx := context.Background()
	f := newConnFixture(nil, jane())

	c, err := f.svc.UpdateConnectionNotes(ctx, "c1", "met at conf")
	require.NoError(t, err)
	assert.Equal(t, "met at conf", c.Notes)
	require.Len(t, f.notes.notes, 1)
	assert.Equal(t, domain.NoteTypeNoteUpdated, f.notes.notes[0].Type)
	assert.True(t, f.tracker.has(domain.ActionNoteAdded))

	_, err = f.svc.UpdateConnectionNotes(ctx, "nope", "x")
	assertCode(t, err, code.ErrorConnectionNotFound)
}

func TestAddConnectionNote(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults type and touches last contacted", func(t *testing.T) {
		f := newConnFixture(nil, jane())
		id, err := f.svc.AddConnectionNote(ctx, "c1", "coffee next week", "")
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		n, err := f.notes.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.NoteTypeNote, n.Type)

		c, _ := f.conns.GetByID(ctx, "c1")
		require.NotNil(t, c.LastContactedAt)
		assert.True(t, c.LastContactedAt.Equal(fixedNow))
	})

	tests := []struct {
		name    string
		connID  string
		content string
		kind    domain.NoteType
		want    *code.Code
	}{
		{"empty content", "c1", "   ", domain.NoteTypeNote, code.ErrorNoteContentEmpty},
		{"bad type", "c1", "hi", "memo", code.ErrorInvalidNoteType},
		{"unknown connection", "nope", "hi", domain.NoteTypeQuickNote, code.ErrorConnectionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConnFixture(nil, jane())
			_, err := f.svc.AddConnectionNote(ctx, tt.connID, tt.content, tt.kind)
			assertCode(t, err, tt.want)
		})
	}
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	f := newConnFixture(nil, jane())
	f.notes.notes = []*domain.Note{
		{ID: "n1", ConnectionID: "c1", Type: domain.NoteTypeQuickNote, Content: "x"},
		{ID: "n2", ConnectionID: "c1", Type: domain.NoteTypeMessageSent, Content: "Sent message: hi..."},
		{ID: "n3", ConnectionID: "c1", Type: domain.NoteTypeStatusUpdated, Content: "contacted"},
	}

	require.NoError(t, f.svc.DeleteNote(ctx, "n1"))
	assertCode(t, f.svc.DeleteNote(ctx, "n2"), code.ErrorNoteNotDeletable)
	assertCode(t, f.svc.DeleteNote(ctx, "n3"), code.ErrorNoteNotDeletable)
	assertCode(t, f.svc.DeleteNote(ctx, "n1"), code.ErrorNoteNotFound)
	assert.Len(t, f.notes.notes, 2)
}

const sampleCSV = `Notes:
"When exporting your connection data, you may notice that some of the email addresses are missing."
"You will only see email addresses for connections who have allowed their connections to see or download their email address."

""
First Name,Last Name,URL,Email Address,Company,Position,Connected On
Jane,Doe,https://example.com/in/jane,jane@example.com,Acme,Engineer,01 Mar 2024
Bob,Stone,https://example.com/in/bob,,Globex,Manager,15 Jan 2023
Jane,Doe,https://example.com/in/jane,,Initech,Intern,10 Jun 2020
`

func TestLoadConnections(t *testing.T) {
	ctx := context.Background()

	t.Run("missing csv yields empty list", func(t *testing.T) {
		cfg := &ServiceConfig{Import: ImportServiceConfig{CSVPath: filepath.Join(t.TempDir(), "absent.csv")}}
		f := newConnFixture(cfg)
		list, err := f.svc.LoadConnections(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Equal(t, 0, f.conns.upserts)
	})

	t.Run("empty store imports csv once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Connections.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
		cfg := &ServiceConfig{Import: ImportServiceConfig{CSVPath: path}}
		f := newConnFixture(cfg)

		list, err := f.svc.LoadConnections(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		var merged *domain.Connection
		for _, c := range list {
			if c.FirstName == "Jane" {
				merged = c
			}
		}
		require.NotNil(t, merged)
		assert.Equal(t, "Acme", merged.Company)
		require.Len(t, merged.PastPositions, 1)
		assert.Equal(t, "Initech", merged.PastPositions[0].Company)

		again, err := f.svc.LoadConnections(ctx)
		require.NoError(t, err)
		assert.Len(t, again, 2)
		assert.Equal(t, 1, f.conns.upserts)
	})

	t.Run("concurrent callers share one import", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Connections.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
		f := newConnFixture(&ServiceConfig{Import: ImportServiceConfig{CSVPath: path}})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				list, err := f.svc.LoadConnections(ctx)
				assert.NoError(t, err)
				assert.Len(t, list, 2)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, f.conns.upserts)
	})
}

func TestImportConnectionsForce(t *testing.T) {
	ctx := context.Background()
	f := newConnFixture(nil, jane())

	list, err := f.svc.ImportConnections(ctx, strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 0, f.conns.upserts)

	list, err = f.svc.ImportConnections(ctx, strings.NewReader(sampleCSV), true)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 1, f.conns.upserts)
}
