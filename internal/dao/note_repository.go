package dao

import (
	"context"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

var _ domain.NoteRepository = (*noteRepository)(nil)

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	return &domain.Note{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		Content:      m.Content,
		Type:         domain.NoteType(m.Type),
		CreatedAt:    m.CreatedAt.Local(),
	}
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := &model.Note{
		ID:           note.ID,
		ConnectionID: note.ConnectionID,
		Content:      note.Content,
		Type:         string(note.Type),
		CreatedAt:    utc(note.CreatedAt),
	}
	err := r.dao.ExecuteWrite(ctx, model.TableNameNote, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var m model.Note
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByConnection 获取联系人的笔记
func (r *noteRepository) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.DB(ctx).
		Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameNote, func(db *gorm.DB) error {
		res := db.Where("id = ?", id).Delete(&model.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
