package dao

import (
	"context"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// opportunityRepository 实现 domain.OpportunityRepository 接口
type opportunityRepository struct {
	dao *Dao
}

// NewOpportunityRepository 创建 OpportunityRepository 实例
func NewOpportunityRepository(dao *Dao) domain.OpportunityRepository {
	return &opportunityRepository{dao: dao}
}

var _ domain.OpportunityRepository = (*opportunityRepository)(nil)

func (r *opportunityRepository) toDomain(m *model.Opportunity) *domain.Opportunity {
	d := &domain.Opportunity{}
	_ = copier.Copy(d, m)
	d.ExpectedCloseDate = localPtr(m.ExpectedCloseDate)
	d.CreatedAt = m.CreatedAt.Local()
	d.UpdatedAt = m.UpdatedAt.Local()
	return d
}

// Create 创建商机
func (r *opportunityRepository) Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	m := &model.Opportunity{}
	_ = copier.Copy(m, o)
	m.ExpectedCloseDate = utcPtr(o.ExpectedCloseDate)
	m.CreatedAt = utc(o.CreatedAt)
	m.UpdatedAt = utc(o.UpdatedAt)

	err := r.dao.ExecuteWrite(ctx, model.TableNameOpportunity, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取商机
func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	var m model.Opportunity
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByConnection 获取联系人的商机
func (r *opportunityRepository) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Opportunity, error) {
	var ms []*model.Opportunity
	err := r.dao.DB(ctx).
		Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Opportunity, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Update 部分更新商机
func (r *opportunityRepository) Update(ctx context.Context, id string, u domain.OpportunityUpdate, at time.Time) error {
	values := map[string]interface{}{"updated_at": utc(at)}
	if u.Title != nil {
		values["title"] = *u.Title
	}
	if u.Description != nil {
		values["description"] = *u.Description
	}
	if u.Status != nil {
		values["status"] = *u.Status
	}
	if u.Value != nil {
		values["value"] = *u.Value
	}
	if u.Probability != nil {
		values["probability"] = *u.Probability
	}
	if u.ExpectedCloseDate != nil {
		values["expected_close_date"] = utc(*u.ExpectedCloseDate)
	}
	return r.dao.ExecuteWrite(ctx, model.TableNameOpportunity, func(db *gorm.DB) error {
		res := db.Model(&model.Opportunity{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete 删除商机
func (r *opportunityRepository) Delete(ctx context.Context, id string) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameOpportunity, func(db *gorm.DB) error {
		res := db.Where("id = ?", id).Delete(&model.Opportunity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// referralRepository 实现 domain.ReferralRepository 接口
type referralRepository struct {
	dao *Dao
}

// NewReferralRepository 创建 ReferralRepository 实例
func NewReferralRepository(dao *Dao) domain.ReferralRepository {
	return &referralRepository{dao: dao}
}

var _ domain.ReferralRepository = (*referralRepository)(nil)

func (r *referralRepository) toDomain(m *model.Referral) *domain.Referral {
	d := &domain.Referral{}
	_ = copier.Copy(d, m)
	d.CreatedAt = m.CreatedAt.Local()
	return d
}

// Create 创建推荐
func (r *referralRepository) Create(ctx context.Context, d *domain.Referral) (*domain.Referral, error) {
	m := &model.Referral{}
	_ = copier.Copy(m, d)
	m.CreatedAt = utc(d.CreatedAt)
	err := r.dao.ExecuteWrite(ctx, model.TableNameReferral, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByConnection 获取联系人的推荐
func (r *referralRepository) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Referral, error) {
	var ms []*model.Referral
	err := r.dao.DB(ctx).
		Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Referral, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}
