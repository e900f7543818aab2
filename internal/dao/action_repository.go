package dao

import (
	"context"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"gorm.io/gorm"
)

// actionRepository 实现 domain.ActionRepository 接口
type actionRepository struct {
	dao *Dao
}

// NewActionRepository 创建 ActionRepository 实例
func NewActionRepository(dao *Dao) domain.ActionRepository {
	return &actionRepository{dao: dao}
}

var _ domain.ActionRepository = (*actionRepository)(nil)

func (r *actionRepository) toDomain(m *model.ActionTracker) *domain.ActionCount {
	return &domain.ActionCount{
		UserID:        m.UserID,
		ActionType:    domain.ActionType(m.ActionType),
		Count:         m.Count,
		LastUpdatedAt: m.LastUpdatedAt.Local(),
		CreatedAt:     m.CreatedAt.Local(),
	}
}

// Get 获取计数
func (r *actionRepository) Get(ctx context.Context, userID string, action domain.ActionType) (*domain.ActionCount, error) {
	var m model.ActionTracker
	err := r.dao.DB(ctx).
		Where("user_id = ? AND action_type = ?", userID, string(action)).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Increment 计数加一
func (r *actionRepository) Increment(ctx context.Context, userID string, action domain.ActionType, at time.Time) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameActionTracker, func(db *gorm.DB) error {
		res := db.Model(&model.ActionTracker{}).
			Where("user_id = ? AND action_type = ?", userID, string(action)).
			Updates(map[string]interface{}{
				"count":           gorm.Expr("count + 1"),
				"last_updated_at": utc(at),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Insert 插入计数为 1 的记录
func (r *actionRepository) Insert(ctx context.Context, userID string, action domain.ActionType, at time.Time) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameActionTracker, func(db *gorm.DB) error {
		return db.Create(&model.ActionTracker{
			UserID:        userID,
			ActionType:    string(action),
			Count:         1,
			LastUpdatedAt: utc(at),
			CreatedAt:     utc(at),
		}).Error
	})
}

// List 获取全部计数
func (r *actionRepository) List(ctx context.Context, userID string) ([]*domain.ActionCount, error) {
	var ms []*model.ActionTracker
	err := r.dao.DB(ctx).
		Where("user_id = ?", userID).
		Order("count DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ActionCount, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Sum 计数总和，无记录时为 0
func (r *actionRepository) Sum(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.dao.DB(ctx).
		Model(&model.ActionTracker{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}
