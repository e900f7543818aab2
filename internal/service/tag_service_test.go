package service

import (
	"context"
	"testing"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockTagRepo struct {
	domain.TagRepository
	byName   map[string]*domain.Tag
	attached map[string]bool
}

func (m *mockTagRepo) CreateIfAbsent(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if t, ok := m.byName[tag.Name]; ok {
		return t, nil
	}
	m.byName[tag.Name] = tag
	return tag, nil
}

func (m *mockTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	for _, t := range m.byName {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTagRepo) Attach(ctx context.Context, connectionID, tagID string) error {
	m.attached[connectionID+"/"+tagID] = true
	return nil
}

type byTagsConnRepo struct {
	*mockConnectionRepo
	gotIDs  []string
	gotMode domain.TagMatchMode
}

func (m *byTagsConnRepo) ListByTags(ctx context.Context, tagIDs []string, mode domain.TagMatchMode) ([]*domain.Connection, error) {
	m.gotIDs = tagIDs
	m.gotMode = mode
	return []*domain.Connection{}, nil
}

func TestCreateTag(t *testing.T) {
	ctx := context.Background()
	repo := &mockTagRepo{byName: map[string]*domain.Tag{}, attached: map[string]bool{}}
	svc := NewTagService(repo, newMockConnectionRepo(), &recordingTracker{})

	a, err := svc.CreateTag(ctx, " investor ")
	require.NoError(t, err)
	assert.Equal(t, "investor", a.Name)

	b, err := svc.CreateTag(ctx, "investor")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	_, err = svc.CreateTag(ctx, "  ")
	assertCode(t, err, code.ErrorTagNameEmpty)
}

func TestAddTagToConnection(t *testing.T) {
	ctx := context.Background()
	repo := &mockTagRepo{byName: map[string]*domain.Tag{"vip": {ID: "t1", Name: "vip"}}, attached: map[string]bool{}}
	tracker := &recordingTracker{}
	svc := NewTagService(repo, newMockConnectionRepo(jane()), tracker)

	require.NoError(t, svc.AddTagToConnection(ctx, "c1", "t1"))
	assert.True(t, repo.attached["c1/t1"])
	assert.True(t, tracker.has(domain.ActionConnectionTagged))

	assertCode(t, svc.AddTagToConnection(ctx, "nope", "t1"), code.ErrorConnectionNotFound)
	assertCode(t, svc.AddTagToConnection(ctx, "c1", "t9"), code.ErrorTagNotFound)
}

func TestGetConnectionsByTags(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		ids      []string
		mode     domain.TagMatchMode
		wantErr  *code.Code
		wantIDs  []string
		wantMode domain.TagMatchMode
	}{
		{name: "empty list", ids: nil, wantErr: code.ErrorTagIDsRequired},
		{name: "blank ids only", ids: []string{" ", ""}, wantErr: code.ErrorTagIDsRequired},
		{name: "all", ids: []string{"a", "b"}, mode: domain.TagMatchAll, wantIDs: []string{"a", "b"}, wantMode: domain.TagMatchAll},
		{name: "unknown mode means any", ids: []string{"a"}, mode: "XOR", wantIDs: []string{"a"}, wantMode: domain.TagMatchAny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conns := &byTagsConnRepo{mockConnectionRepo: newMockConnectionRepo()}
			svc := NewTagService(&mockTagRepo{}, conns, &recordingTracker{})
			_, err := svc.GetConnectionsByTags(ctx, tt.ids, tt.mode)
			if tt.wantErr != nil {
				assertCode(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, conns.gotIDs)
			assert.Equal(t, tt.wantMode, conns.gotMode)
		})
	}
}
