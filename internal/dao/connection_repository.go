package dao

import (
	"context"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

// connectionRepository 实现 domain.ConnectionRepository 接口
type connectionRepository struct {
	dao *Dao
}

// NewConnectionRepository 创建 ConnectionRepository 实例
func NewConnectionRepository(dao *Dao) domain.ConnectionRepository {
	return &connectionRepository{dao: dao}
}

var _ domain.ConnectionRepository = (*connectionRepository)(nil)

func (r *connectionRepository) toDomain(m *model.Connection) *domain.Connection {
	if m == nil {
		return nil
	}
	d := &domain.Connection{}
	_ = copier.Copy(d, m)
	d.Status = domain.ConnectionStatus(m.Status)
	d.LastContactedAt = localPtr(m.LastContactedAt)
	d.CreatedAt = m.CreatedAt.Local()
	d.PastPositions = make([]domain.PastPosition, 0, len(m.PastPositions))
	for _, p := range m.PastPositions {
		d.PastPositions = append(d.PastPositions, domain.PastPosition(p))
	}
	return d
}

func (r *connectionRepository) toModel(d *domain.Connection) *model.Connection {
	m := &model.Connection{}
	_ = copier.Copy(m, d)
	m.Status = string(d.Status)
	if m.Status == "" {
		m.Status = string(domain.StatusNew)
	}
	m.LastContactedAt = utcPtr(d.LastContactedAt)
	m.CreatedAt = utc(d.CreatedAt)
	m.PastPositions = make(model.PastPositions, 0, len(d.PastPositions))
	for _, p := range d.PastPositions {
		m.PastPositions = append(m.PastPositions, model.PastPosition(p))
	}
	return m
}

func (r *connectionRepository) toDomains(ms []*model.Connection) []*domain.Connection {
	out := make([]*domain.Connection, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

// GetByID 根据ID获取联系人
func (r *connectionRepository) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	var m model.Connection
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// List 获取全部联系人
func (r *connectionRepository) List(ctx context.Context) ([]*domain.Connection, error) {
	var ms []*model.Connection
	if err := r.dao.DB(ctx).Order("first_name ASC, last_name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toDomains(ms), nil
}

// Count 获取联系人数量
func (r *connectionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.dao.DB(ctx).Model(&model.Connection{}).Count(&n).Error
	return n, err
}

// Upsert inserts rows, replacing any row that already has the same id
// Upsert 插入或替换联系人
func (r *connectionRepository) Upsert(ctx context.Context, conns []*domain.Connection) error {
	if len(conns) == 0 {
		return nil
	}
	ms := make([]*model.Connection, 0, len(conns))
	for _, c := range conns {
		ms = append(ms, r.toModel(c))
	}
	return r.dao.ExecuteWrite(ctx, WriteKeyConnections, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).CreateInBatches(ms, upsertBatchSize).Error
		})
	})
}

func (r *connectionRepository) update(ctx context.Context, id string, values map[string]interface{}) error {
	return r.dao.ExecuteWrite(ctx, WriteKeyConnections, func(db *gorm.DB) error {
		res := db.Model(&model.Connection{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdateNotes 更新联系人备注
func (r *connectionRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	return r.update(ctx, id, map[string]interface{}{"notes": notes})
}

// UpdateStatus 更新状态并刷新最后联系时间
func (r *connectionRepository) UpdateStatus(ctx context.Context, id string, status domain.ConnectionStatus, contactedAt time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":            string(status),
		"last_contacted_at": utc(contactedAt),
	})
}

// TouchLastContacted 刷新最后联系时间
func (r *connectionRepository) TouchLastContacted(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"last_contacted_at": utc(at)})
}

// ListByTags 按标签筛选联系人
// OR: 拥有任一标签；AND: 拥有全部标签
func (r *connectionRepository) ListByTags(ctx context.Context, tagIDs []string, mode domain.TagMatchMode) ([]*domain.Connection, error) {
	ids := uniqueStrings(tagIDs)
	if len(ids) == 0 {
		return []*domain.Connection{}, nil
	}

	sub := r.dao.DB(ctx).Model(&model.ConnectionTag{}).Select("connection_id").Where("tag_id IN ?", ids)
	if mode == domain.TagMatchAll {
		sub = sub.Group("connection_id").Having("COUNT(DISTINCT tag_id) = ?", len(ids))
	}

	var ms []*model.Connection
	err := r.dao.DB(ctx).
		Where("id IN (?)", sub).
		Order("first_name ASC, last_name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomains(ms), nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
