package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/util"
)

// OpportunityDTO 商机数据传输对象
type OpportunityDTO struct {
	ID                string     `json:"id"`
	ConnectionID      string     `json:"connectionId"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	Value             float64    `json:"value"`
	Probability       int        `json:"probability"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// OpportunityCreateRequest 创建商机请求参数
type OpportunityCreateRequest struct {
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	Value             float64 `json:"value" binding:"gte=0"`
	Probability       int     `json:"probability" binding:"gte=0,lte=100"`
	ExpectedCloseDate string  `json:"expectedCloseDate"`
}

// OpportunityUpdateFields 可更新字段
type OpportunityUpdateFields struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	Status            *string  `json:"status"`
	Value             *float64 `json:"value"`
	Probability       *int     `json:"probability"`
	ExpectedCloseDate *string  `json:"expectedCloseDate"`
}

// OpportunityUpdateRequest 更新商机请求参数
type OpportunityUpdateRequest struct {
	ID      string                   `json:"id" binding:"required"`
	Updates *OpportunityUpdateFields `json:"updates" binding:"required"`
}

// ReferralDTO 推荐数据传输对象
type ReferralDTO struct {
	ID                   string    `json:"id"`
	ConnectionID         string    `json:"connectionId"`
	ReferredConnectionID string    `json:"referredConnectionId,omitempty"`
	ReferredName         string    `json:"referredName"`
	ReferredPosition     string    `json:"referredPosition"`
	ReferredCompany      string    `json:"referredCompany"`
	ReferredEmail        string    `json:"referredEmail"`
	ReferredLinkedIn     string    `json:"referredLinkedIn"`
	RelationshipNotes    string    `json:"relationshipNotes"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ReferralCreateRequest 创建推荐请求参数
type ReferralCreateRequest struct {
	ReferredConnectionID string `json:"referredConnectionId"`
	ReferredName         string `json:"referredName" binding:"required"`
	ReferredPosition     string `json:"referredPosition"`
	ReferredCompany      string `json:"referredCompany"`
	ReferredEmail        string `json:"referredEmail" binding:"omitempty,email"`
	ReferredLinkedIn     string `json:"referredLinkedIn"`
	RelationshipNotes    string `json:"relationshipNotes"`
	Status               string `json:"status"`
}

// ToDomain 转换为领域模型
func (r *OpportunityCreateRequest) ToDomain(connectionID string) (*domain.Opportunity, error) {
	o := &domain.Opportunity{
		ConnectionID: connectionID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		Value:        r.Value,
		Probability:  r.Probability,
	}
	if r.ExpectedCloseDate != "" {
		t, err := util.ParseDueDate(r.ExpectedCloseDate)
		if err != nil {
			return nil, err
		}
		o.ExpectedCloseDate = &t
	}
	return o, nil
}

// ToDomain 转换为领域模型
func (r *OpportunityUpdateFields) ToDomain() (domain.OpportunityUpdate, error) {
	u := domain.OpportunityUpdate{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Value:       r.Value,
		Probability: r.Probability,
	}
	if r.ExpectedCloseDate != nil {
		t, err := util.ParseDueDate(*r.ExpectedCloseDate)
		if err != nil {
			return u, err
		}
		u.ExpectedCloseDate = &t
	}
	return u, nil
}

// ToDomain 转换为领域模型
func (r *ReferralCreateRequest) ToDomain(connectionID string) *domain.Referral {
	return &domain.Referral{
		ConnectionID:         connectionID,
		ReferredConnectionID: r.ReferredConnectionID,
		ReferredName:         r.ReferredName,
		ReferredPosition:     r.ReferredPosition,
		ReferredCompany:      r.ReferredCompany,
		ReferredEmail:        r.ReferredEmail,
		ReferredLinkedIn:     r.ReferredLinkedIn,
		RelationshipNotes:    r.RelationshipNotes,
		Status:               r.Status,
	}
}

func NewOpportunityDTO(o *domain.Opportunity) *OpportunityDTO {
	if o == nil {
		return nil
	}
	return &OpportunityDTO{
		ID:                o.ID,
		ConnectionID:      o.ConnectionID,
		Title:             o.Title,
		Description:       o.Description,
		Status:            o.Status,
		Value:             o.Value,
		Probability:       o.Probability,
		ExpectedCloseDate: o.ExpectedCloseDate,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func NewOpportunityDTOs(list []*domain.Opportunity) []*OpportunityDTO {
	out := make([]*OpportunityDTO, 0, len(list))
	for _, o := range list {
		out = append(out, NewOpportunityDTO(o))
	}
	return out
}

func NewReferralDTO(r *domain.Referral) *ReferralDTO {
	if r == nil {
		return nil
	}
	return &ReferralDTO{
		ID:                   r.ID,
		ConnectionID:         r.ConnectionID,
		ReferredConnectionID: r.ReferredConnectionID,
		ReferredName:         r.ReferredName,
		ReferredPosition:     r.ReferredPosition,
		ReferredCompany:      r.ReferredCompany,
		ReferredEmail:        r.ReferredEmail,
		ReferredLinkedIn:     r.ReferredLinkedIn,
		RelationshipNotes:    r.RelationshipNotes,
		Status:               r.Status,
		CreatedAt:            r.CreatedAt,
	}
}

func NewReferralDTOs(list []*domain.Referral) []*ReferralDTO {
	out := make([]*ReferralDTO, 0, len(list))
	for _, r := range list {
		out = append(out, NewReferralDTO(r))
	}
	return out
}
