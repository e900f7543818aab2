package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"

	"gorm.io/gorm"
)

type recordingTracker struct {
	mu    sync.Mutex
	kinds []domain.ActionType
}

func (t *recordingTracker) Track(ctx context.Context, kind domain.ActionType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.kinds = append(t.kinds, kind)
}

func (t *recordingTracker) has(kind domain.ActionType) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range t.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

type mockConnectionRepo struct {
	domain.ConnectionRepository
	mu        sync.Mutex
	rows      map[string]*domain.Connection
	statusErr error
	upserts   int
}

func newMockConnectionRepo(conns ...*domain.Connection) *mockConnectionRepo {
	m := &mockConnectionRepo{rows: map[string]*domain.Connection{}}
	for _, c := range conns {
		m.rows[c.ID] = c
	}
	return m
}

func (m *mockConnectionRepo) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockConnectionRepo) List(ctx context.Context) ([]*domain.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Connection, 0, len(m.rows))
	for _, c := range m.rows {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	return out, nil
}

func (m *mockConnectionRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

func (m *mockConnectionRepo) Upsert(ctx context.Context, conns []*domain.Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	for _, c := range conns {
		cp := *c
		m.rows[c.ID] = &cp
	}
	return nil
}

func (m *mockConnectionRepo) UpdateNotes(ctx context.Context, id, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Notes = notes
	return nil
}

func (m *mockConnectionRepo) UpdateStatus(ctx context.Context, id string, status domain.ConnectionStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return m.statusErr
	}
	c, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	c.LastContactedAt = &at
	return nil
}

func (m *mockConnectionRepo) TouchLastContacted(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		c.LastContactedAt = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

type mockNoteRepo struct {
	domain.NoteRepository
	mu    sync.Mutex
	notes []*domain.Note
}

func (m *mockNoteRepo) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *n
	m.notes = append(m.notes, &cp)
	return &cp, nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoteRepo) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Note
	for _, n := range m.notes {
		if n.ConnectionID == connectionID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notes {
		if n.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockReminderRepo struct {
	domain.ReminderRepository
	mu       sync.Mutex
	rows     []*domain.Reminder
	clearErr error
}

func (m *mockReminderRepo) Create(ctx context.Context, r *domain.Reminder) (*domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.rows = append(m.rows, &cp)
	return &cp, nil
}

func (m *mockReminderRepo) find(id string) *domain.Reminder {
	for _, r := range m.rows {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (m *mockReminderRepo) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.find(id); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReminderRepo) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Reminder
	for _, r := range m.rows {
		if r.ConnectionID == connectionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderRepo) SetCompleted(ctx context.Context, id string, completed bool, at *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.find(id)
	if r == nil {
		return gorm.ErrRecordNotFound
	}
	r.Completed = completed
	r.CompletedAt = at
	return nil
}

func (m *mockReminderRepo) Update(ctx context.Context, id string, u domain.ReminderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.find(id)
	if r == nil {
		return gorm.ErrRecordNotFound
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.DueDate != nil {
		r.DueDate = *u.DueDate
	}
	return nil
}

func (m *mockReminderRepo) CompleteOpenByConnection(ctx context.Context, connectionID string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	var n int64
	for _, r := range m.rows {
		if r.ConnectionID == connectionID && !r.Completed {
			r.Completed = true
			t := at
			r.CompletedAt = &t
			n++
		}
	}
	return n, nil
}

func (m *mockReminderRepo) ListOpenDueBetween(ctx context.Context, from, to time.Time, limit int) ([]*domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Reminder
	for _, r := range m.rows {
		if r.Completed {
			continue
		}
		if !from.IsZero() && r.DueDate.Before(from) {
			continue
		}
		if !to.IsZero() && !r.DueDate.Before(to) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockMessageRepo struct {
	domain.MessageRepository
	mu   sync.Mutex
	rows map[string]*domain.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{rows: map[string]*domain.Message{}}
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.rows[msg.ID] = &cp
	return &cp, nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *mockMessageRepo) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for _, msg := range m.rows {
		if msg.ConnectionID == connectionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	msg.Status = domain.MessageStatusSent
	msg.SentAt = &at
	return nil
}

type mockActionRepo struct {
	domain.ActionRepository
	mu     sync.Mutex
	counts map[domain.ActionType]int64
	getErr error
}

func (m *mockActionRepo) Get(ctx context.Context, userID string, kind domain.ActionType) (*domain.ActionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	n, ok := m.counts[kind]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &domain.ActionCount{UserID: userID, ActionType: kind, Count: n}, nil
}

func (m *mockActionRepo) Increment(ctx context.Context, userID string, kind domain.ActionType, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[kind]++
	return nil
}

func (m *mockActionRepo) Insert(ctx context.Context, userID string, kind domain.ActionType, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[kind] = 1
	return nil
}
