package service

import (
	"context"
	"strings"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/google/uuid"
)

// PipelineService 商机与推荐服务接口
type PipelineService interface {
	// CreateOpportunity 创建商机
	CreateOpportunity(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error)

	// ListOpportunities 获取联系人的商机
	ListOpportunities(ctx context.Context, connectionID string) ([]*domain.Opportunity, error)

	// UpdateOpportunity 部分更新商机
	UpdateOpportunity(ctx context.Context, id string, u domain.OpportunityUpdate) (*domain.Opportunity, error)

	// DeleteOpportunity 删除商机
	DeleteOpportunity(ctx context.Context, id string) error

	// CreateReferral 创建推荐
	CreateReferral(ctx context.Context, r *domain.Referral) (*domain.Referral, error)

	// ListReferrals 获取联系人的推荐
	ListReferrals(ctx context.Context, connectionID string) ([]*domain.Referral, error)
}

type pipelineService struct {
	opportunities domain.OpportunityRepository
	referrals     domain.ReferralRepository
	connRepo      domain.ConnectionRepository
	now           func() time.Time
}

// NewPipelineService 创建 PipelineService 实例
func NewPipelineService(opportunities domain.OpportunityRepository, referrals domain.ReferralRepository, connRepo domain.ConnectionRepository) PipelineService {
	return &pipelineService{opportunities: opportunities, referrals: referrals, connRepo: connRepo, now: time.Now}
}

func validProbability(p int) bool {
	return p >= 0 && p <= 100
}

func (s *pipelineService) CreateOpportunity(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	if o == nil || strings.TrimSpace(o.Title) == "" {
		return nil, code.ErrorOpportunityTitleEmpty
	}
	if !validProbability(o.Probability) {
		return nil, code.ErrorInvalidProbability
	}
	if _, err := s.connRepo.GetByID(ctx, o.ConnectionID); err != nil {
		return nil, mapRepoErr(err, code.ErrorConnectionNotFound)
	}

	in := *o
	in.ID = uuid.New().String()
	in.CreatedAt = s.now()
	in.UpdatedAt = in.CreatedAt
	if in.Status == "" {
		in.Status = "open"
	}
	created, err := s.opportunities.Create(ctx, &in)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return created, nil
}

func (s *pipelineService) ListOpportunities(ctx context.Context, connectionID string) ([]*domain.Opportunity, error) {
	list, err := s.opportunities.ListByConnection(ctx, connectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *pipelineService) UpdateOpportunity(ctx context.Context, id string, u domain.OpportunityUpdate) (*domain.Opportunity, error) {
	if u.Probability != nil && !validProbability(*u.Probability) {
		return nil, code.ErrorInvalidProbability
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return nil, code.ErrorOpportunityTitleEmpty
	}
	if err := s.opportunities.Update(ctx, id, u, s.now()); err != nil {
		return nil, mapRepoErr(err, code.ErrorOpportunityNotFound)
	}
	o, err := s.opportunities.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, code.ErrorOpportunityNotFound)
	}
	return o, nil
}

func (s *pipelineService) DeleteOpportunity(ctx context.Context, id string) error {
	return mapRepoErr(s.opportunities.Delete(ctx, id), code.ErrorOpportunityNotFound)
}

func (s *pipelineService) CreateReferral(ctx context.Context, r *domain.Referral) (*domain.Referral, error) {
	if r == nil || strings.TrimSpace(r.ReferredName) == "" {
		return nil, code.ErrorReferralNameRequired
	}
	if _, err := s.connRepo.GetByID(ctx, r.ConnectionID); err != nil {
		return nil, mapRepoErr(err, code.ErrorConnectionNotFound)
	}

	in := *r
	in.ID = uuid.New().String()
	in.CreatedAt = s.now()
	if in.Status == "" {
		in.Status = "new"
	}
	created, err := s.referrals.Create(ctx, &in)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return created, nil
}

func (s *pipelineService) ListReferrals(ctx context.Context, connectionID string) ([]*domain.Referral, error) {
	list, err := s.referrals.ListByConnection(ctx, connectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}
