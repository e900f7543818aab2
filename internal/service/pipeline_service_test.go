package service

import (
	"context"
	"testing"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockOpportunityRepo struct {
	domain.OpportunityRepository
	rows map[string]*domain.Opportunity
}

func (m *mockOpportunityRepo) Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	m.rows[o.ID] = o
	return o, nil
}

func (m *mockOpportunityRepo) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	if o, ok := m.rows[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOpportunityRepo) Update(ctx context.Context, id string, u domain.OpportunityUpdate, at time.Time) error {
	o, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if u.Probability != nil {
		o.Probability = *u.Probability
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	o.UpdatedAt = at
	return nil
}

type mockReferralRepo struct {
	domain.ReferralRepository
	rows []*domain.Referral
}

func (m *mockReferralRepo) Create(ctx context.Context, r *domain.Referral) (*domain.Referral, error) {
	m.rows = append(m.rows, r)
	return r, nil
}

func TestCreateOpportunity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		in   *domain.Opportunity
		want *code.Code
	}{
		{"nil", nil, code.ErrorOpportunityTitleEmpty},
		{"blank title", &domain.Opportunity{ConnectionID: "c1", Title: " "}, code.ErrorOpportunityTitleEmpty},
		{"probability above range", &domain.Opportunity{ConnectionID: "c1", Title: "deal", Probability: 101}, code.ErrorInvalidProbability},
		{"probability below range", &domain.Opportunity{ConnectionID: "c1", Title: "deal", Probability: -1}, code.ErrorInvalidProbability},
		{"unknown connection", &domain.Opportunity{ConnectionID: "nope", Title: "deal"}, code.ErrorConnectionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPipelineService(&mockOpportunityRepo{rows: map[string]*domain.Opportunity{}}, &mockReferralRepo{}, newMockConnectionRepo(jane()))
			_, err := svc.CreateOpportunity(ctx, tt.in)
			assertCode(t, err, tt.want)
		})
	}

	t.Run("defaults status", func(t *testing.T) {
		svc := NewPipelineService(&mockOpportunityRepo{rows: map[string]*domain.Opportunity{}}, &mockReferralRepo{}, newMockConnectionRepo(jane()))
		o, err := svc.CreateOpportunity(ctx, &domain.Opportunity{ConnectionID: "c1", Title: "deal", Probability: 100})
		require.NoError(t, err)
		assert.Equal(t, "open", o.Status)
		assert.NotEmpty(t, o.ID)
	})
}

func TestUpdateOpportunity(t *testing.T) {
	ctx := context.Background()
	repo := &mockOpportunityRepo{rows: map[string]*domain.Opportunity{"o1": {ID: "o1", ConnectionID: "c1", Title: "deal", Status: "open"}}}
	svc := NewPipelineService(repo, &mockReferralRepo{}, newMockConnectionRepo(jane()))

	p := 60
	o, err := svc.UpdateOpportunity(ctx, "o1", domain.OpportunityUpdate{Probability: &p})
	require.NoError(t, err)
	assert.Equal(t, 60, o.Probability)

	bad := 150
	_, err = svc.UpdateOpportunity(ctx, "o1", domain.OpportunityUpdate{Probability: &bad})
	assertCode(t, err, code.ErrorInvalidProbability)

	_, err = svc.UpdateOpportunity(ctx, "missing", domain.OpportunityUpdate{Probability: &p})
	assertCode(t, err, code.ErrorOpportunityNotFound)
}

func TestCreateReferral(t *testing.T) {
	ctx := context.Background()
	refs := &mockReferralRepo{}
	svc := NewPipelineService(&mockOpportunityRepo{}, refs, newMockConnectionRepo(jane()))

	_, err := svc.CreateReferral(ctx, &domain.Referral{ConnectionID: "c1"})
	assertCode(t, err, code.ErrorReferralNameRequired)

	r, err := svc.CreateReferral(ctx, &domain.Referral{ConnectionID: "c1", ReferredName: "Ann Lee"})
	require.NoError(t, err)
	assert.Equal(t, "new", r.Status)
	assert.Len(t, refs.rows, 1)
}
