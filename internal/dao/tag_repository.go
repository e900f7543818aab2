package dao

import (
	"context"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tagRepository 实现 domain.TagRepository 接口
type tagRepository struct {
	dao *Dao
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(dao *Dao) domain.TagRepository {
	return &tagRepository{dao: dao}
}

var _ domain.TagRepository = (*tagRepository)(nil)

func (r *tagRepository) toDomain(m *model.Tag) *domain.Tag {
	return &domain.Tag{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt.Local()}
}

func (r *tagRepository) toDomains(ms []*model.Tag) []*domain.Tag {
	out := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

// CreateIfAbsent inserts by unique name and returns whichever row holds that name afterwards
// CreateIfAbsent 按名称插入，冲突时忽略并返回已有记录
func (r *tagRepository) CreateIfAbsent(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	m := &model.Tag{ID: tag.ID, Name: tag.Name, CreatedAt: utc(tag.CreatedAt)}
	var stored model.Tag
	err := r.dao.ExecuteWrite(ctx, model.TableNameTag, func(db *gorm.DB) error {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(m).Error; err != nil {
			return err
		}
		return db.Where("name = ?", tag.Name).First(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(&stored), nil
}

// GetByID 根据ID获取标签
func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	var m model.Tag
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// List 获取全部标签
func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	var ms []*model.Tag
	if err := r.dao.DB(ctx).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toDomains(ms), nil
}

// ListByConnection 获取联系人的标签
func (r *tagRepository) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Tag, error) {
	var ms []*model.Tag
	err := r.dao.DB(ctx).
		Table(r.dao.Table(model.TableNameTag)+" t").
		Select("t.*").
		Joins("JOIN "+r.dao.Table(model.TableNameConnectionTag)+" ct ON ct.tag_id = t.id").
		Where("ct.connection_id = ?", connectionID).
		Order("t.name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomains(ms), nil
}

// Attach 关联标签，已存在则忽略
func (r *tagRepository) Attach(ctx context.Context, connectionID, tagID string) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameConnectionTag, func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.ConnectionTag{ConnectionID: connectionID, TagID: tagID}).Error
	})
}

// Detach 解除关联
func (r *tagRepository) Detach(ctx context.Context, connectionID, tagID string) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameConnectionTag, func(db *gorm.DB) error {
		return db.Where("connection_id = ? AND tag_id = ?", connectionID, tagID).
			Delete(&model.ConnectionTag{}).Error
	})
}
