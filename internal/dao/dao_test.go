package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/writequeue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	return newTestDaoWithPrefix(t, "")
}

func newTestDaoWithPrefix(t *testing.T, prefix string) *Dao {
	t.Helper()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "crm.db"),
		TablePrefix: prefix,
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)

	wq := writequeue.New(nil, zap.NewNop())
	t.Cleanup(func() {
		_ = wq.Shutdown(context.Background())
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db, context.Background(), WithLogger(zap.NewNop()), WithWriteQueueManager(wq))
}

func seedConnections(t *testing.T, d *Dao, conns ...*domain.Connection) {
	t.Helper()
	require.NoError(t, NewConnectionRepository(d).Upsert(context.Background(), conns))
}

func TestConnectionUpsertReplacesAndKeepsPastPositions(t *testing.T) {
	d := newTestDao(t)
	repo := NewConnectionRepository(d)
	ctx := context.Background()

	seedConnections(t, d, &domain.Connection{
		ID: "a1", FirstName: "Jane", LastName: "Doe", Company: "co A", Status: domain.StatusNew,
	})
	seedConnections(t, d, &domain.Connection{
		ID: "a1", FirstName: "Jane", LastName: "Doe", Company: "co B", Status: domain.StatusNew,
		PastPositions: []domain.PastPosition{{Company: "co A", ConnectedOn: "01 Jan 2020"}},
	})

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "co B", got.Company)
	require.Len(t, got.PastPositions, 1)
	assert.Equal(t, "co A", got.PastPositions[0].Company)
	assert.Nil(t, got.LastContactedAt)
}

func TestConnectionUpdateMissing(t *testing.T) {
	d := newTestDao(t)
	err := NewConnectionRepository(d).UpdateNotes(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMalformedPastPositionsReadsEmpty(t *testing.T) {
	d := newTestDao(t)
	seedConnections(t, d, &domain.Connection{ID: "b1", FirstName: "Bo", LastName: "Li"})
	require.NoError(t, d.Db.Exec("UPDATE connections SET past_positions = ? WHERE id = ?", "{oops", "b1").Error)

	got, err := NewConnectionRepository(d).GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Empty(t, got.PastPositions)
}

func TestListByTagsModes(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	seedConnections(t, d,
		&domain.Connection{ID: "c1", FirstName: "Ann", LastName: "Zed"},
		&domain.Connection{ID: "c2", FirstName: "Bob", LastName: "Yu"},
		&domain.Connection{ID: "c3", FirstName: "Cat", LastName: "Xi"},
	)
	tags := NewTagRepository(d)
	for _, pair := range [][2]string{{"c1", "t1"}, {"c1", "t2"}, {"c2", "t1"}, {"c3", "t2"}} {
		require.NoError(t, tags.Attach(ctx, pair[0], pair[1]))
	}
	require.NoError(t, tags.Attach(ctx, "c1", "t1"))

	repo := NewConnectionRepository(d)
	anyOf, err := repo.ListByTags(ctx, []string{"t1", "t2"}, domain.TagMatchAny)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(anyOf))

	all, err := repo.ListByTags(ctx, []string{"t1", "t2", "t1"}, domain.TagMatchAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids(all))
}

func ids(conns []*domain.Connection) []string {
	out := make([]string, 0, len(conns))
	for _, c := range conns {
		out = append(out, c.ID)
	}
	return out
}

func TestTagCreateIfAbsent(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	ctx := context.Background()

	first, err := repo.CreateIfAbsent(ctx, &domain.Tag{ID: "t1", Name: "investor", CreatedAt: time.Now()})
	require.NoError(t, err)
	second, err := repo.CreateIfAbsent(ctx, &domain.Tag{ID: "t2", Name: "investor", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTablePrefixAppliesToModelsAndJoins(t *testing.T) {
	d := newTestDaoWithPrefix(t, "crm_")
	ctx := context.Background()

	assert.True(t, d.Db.Migrator().HasTable("crm_connections"))
	assert.True(t, d.Db.Migrator().HasTable("crm_action_tracker"))
	assert.False(t, d.Db.Migrator().HasTable("connections"))
	assert.Equal(t, "crm_reminders", d.Table("reminders"))

	seedConnections(t, d, &domain.Connection{ID: "c1", FirstName: "Ann", LastName: "Zed"})

	tags := NewTagRepository(d)
	_, err := tags.CreateIfAbsent(ctx, &domain.Tag{ID: "t1", Name: "investor", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, tags.Attach(ctx, "c1", "t1"))
	list, err := tags.ListByConnection(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "investor", list[0].Name)

	reminders := NewReminderRepository(d)
	_, err = reminders.Create(ctx, &domain.Reminder{
		ID: "r1", ConnectionID: "c1", Title: "ping", DueDate: time.Now(), CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	open, err := reminders.ListOpenDueBetween(ctx, time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Ann Zed", open[0].ConnectionName)
}

func TestReminderDueWindowAndCompleteOpen(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	seedConnections(t, d, &domain.Connection{ID: "c1", FirstName: "Ann", LastName: "Zed"})
	repo := NewReminderRepository(d)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	for i, due := range []time.Time{today.Add(-24 * time.Hour), today.Add(9 * time.Hour), today.Add(48 * time.Hour)} {
		_, err := repo.Create(ctx, &domain.Reminder{
			ID: string(rune('a' + i)), ConnectionID: "c1", Title: "r", DueDate: due, CreatedAt: now,
		})
		require.NoError(t, err)
	}

	todays, err := repo.ListOpenDueBetween(ctx, today, today.AddDate(0, 0, 1), 0)
	require.NoError(t, err)
	require.Len(t, todays, 1)
	assert.Equal(t, "b", todays[0].ID)
	assert.Equal(t, "Ann Zed", todays[0].ConnectionName)

	overdue, err := repo.ListOpenDueBetween(ctx, time.Time{}, today, 0)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "a", overdue[0].ID)

	n, err := repo.CompleteOpenByConnection(ctx, "c1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	open, err := repo.ListOpenDueBetween(ctx, time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestActionIncrementAndSum(t *testing.T) {
	d := newTestDao(t)
	repo := NewActionRepository(d)
	ctx := context.Background()
	now := time.Now()

	total, err := repo.Sum(ctx, domain.CurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	err = repo.Increment(ctx, domain.CurrentUserID, domain.ActionNoteAdded, now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Insert(ctx, domain.CurrentUserID, domain.ActionNoteAdded, now))
	require.NoError(t, repo.Increment(ctx, domain.CurrentUserID, domain.ActionNoteAdded, now))
	require.NoError(t, repo.Insert(ctx, domain.CurrentUserID, domain.ActionMessageSent, now))

	list, err := repo.List(ctx, domain.CurrentUserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ActionNoteAdded, list[0].ActionType)
	assert.Equal(t, int64(2), list[0].Count)

	total, err = repo.Sum(ctx, domain.CurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestMessageMarkSent(t *testing.T) {
	d := newTestDao(t)
	repo := NewMessageRepository(d)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Message{
		ID: "m1", ConnectionID: "c1", Content: "hi", Status: domain.MessageStatusDraft,
		Template: domain.TemplateACA, CreatedAt: time.Now(),
		Metadata: &domain.MessageMetadata{Acknowledgment: "a", Compliment: "b", Ask: "c"},
	})
	require.NoError(t, err)

	require.NoError(t, repo.MarkSent(ctx, "m1", time.Now()))
	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, got.IsSent())
	require.NotNil(t, got.SentAt)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "c", got.Metadata.Ask)
}
