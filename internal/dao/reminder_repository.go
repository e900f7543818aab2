package dao

import (
	"context"
	"strings"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"gorm.io/gorm"
)

// reminderRepository 实现 domain.ReminderRepository 接口
type reminderRepository struct {
	dao *Dao
}

// NewReminderRepository 创建 ReminderRepository 实例
func NewReminderRepository(dao *Dao) domain.ReminderRepository {
	return &reminderRepository{dao: dao}
}

var _ domain.ReminderRepository = (*reminderRepository)(nil)

func (r *reminderRepository) toDomain(m *model.Reminder) *domain.Reminder {
	return &domain.Reminder{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		Title:        m.Title,
		Description:  m.Description,
		DueDate:      m.DueDate.Local(),
		Completed:    m.Completed,
		CompletedAt:  localPtr(m.CompletedAt),
		CreatedAt:    m.CreatedAt.Local(),
	}
}

// Create 创建提醒
func (r *reminderRepository) Create(ctx context.Context, d *domain.Reminder) (*domain.Reminder, error) {
	m := &model.Reminder{
		ID:           d.ID,
		ConnectionID: d.ConnectionID,
		Title:        d.Title,
		Description:  d.Description,
		DueDate:      utc(d.DueDate),
		Completed:    d.Completed,
		CompletedAt:  utcPtr(d.CompletedAt),
		CreatedAt:    utc(d.CreatedAt),
	}
	err := r.dao.ExecuteWrite(ctx, WriteKeyConnections, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取提醒
func (r *reminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	var m model.Reminder
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByConnection 获取联系人的提醒
func (r *reminderRepository) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Reminder, error) {
	var ms []*model.Reminder
	err := r.dao.DB(ctx).
		Where("connection_id = ?", connectionID).
		Order("completed ASC, due_date ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Reminder, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

func (r *reminderRepository) update(ctx context.Context, id string, values map[string]interface{}) error {
	return r.dao.ExecuteWrite(ctx, WriteKeyConnections, func(db *gorm.DB) error {
		res := db.Model(&model.Reminder{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetCompleted 设置完成状态
func (r *reminderRepository) SetCompleted(ctx context.Context, id string, completed bool, completedAt *time.Time) error {
	values := map[string]interface{}{"completed": completed, "completed_at": nil}
	if completedAt != nil {
		values["completed_at"] = utc(*completedAt)
	}
	return r.update(ctx, id, values)
}

// Update 部分更新提醒
func (r *reminderRepository) Update(ctx context.Context, id string, u domain.ReminderUpdate) error {
	values := map[string]interface{}{}
	if u.Title != nil {
		values["title"] = *u.Title
	}
	if u.Description != nil {
		values["description"] = *u.Description
	}
	if u.DueDate != nil {
		values["due_date"] = utc(*u.DueDate)
	}
	if len(values) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	return r.update(ctx, id, values)
}

// Delete 删除提醒
func (r *reminderRepository) Delete(ctx context.Context, id string) error {
	return r.dao.ExecuteWrite(ctx, WriteKeyConnections, func(db *gorm.DB) error {
		res := db.Where("id = ?", id).Delete(&model.Reminder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CompleteOpenByConnection 完成联系人全部未完成提醒
func (r *reminderRepository) CompleteOpenByConnection(ctx context.Context, connectionID string, at time.Time) (int64, error) {
	var affected int64
	err := r.dao.ExecuteWrite(ctx, WriteKeyConnections, func(db *gorm.DB) error {
		res := db.Model(&model.Reminder{}).
			Where("connection_id = ? AND completed = ?", connectionID, false).
			Updates(map[string]interface{}{"completed": true, "completed_at": utc(at)})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// ListOpenDueBetween 获取到期时间在 [from, to) 内的未完成提醒
func (r *reminderRepository) ListOpenDueBetween(ctx context.Context, from, to time.Time, limit int) ([]*domain.Reminder, error) {
	q := r.dao.DB(ctx).
		Table(r.dao.Table(model.TableNameReminder)+" r").
		Select("r.*, c.first_name, c.last_name").
		Joins("LEFT JOIN "+r.dao.Table(model.TableNameConnection)+" c ON c.id = r.connection_id").
		Where("r.completed = ?", false)
	if !from.IsZero() {
		q = q.Where("r.due_date >= ?", utc(from))
	}
	if !to.IsZero() {
		q = q.Where("r.due_date < ?", utc(to))
	}
	q = q.Order("r.due_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []*model.ReminderWithName
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Reminder, 0, len(rows))
	for _, row := range rows {
		d := r.toDomain(&row.Reminder)
		d.ConnectionName = strings.TrimSpace(row.FirstName + " " + row.LastName)
		out = append(out, d)
	}
	return out, nil
}
