package dao

import (
	"context"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/model"

	"gorm.io/gorm"
)

// messageRepository 实现 domain.MessageRepository 接口
type messageRepository struct {
	dao *Dao
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(dao *Dao) domain.MessageRepository {
	return &messageRepository{dao: dao}
}

var _ domain.MessageRepository = (*messageRepository)(nil)

func (r *messageRepository) toDomain(m *model.Message) *domain.Message {
	d := &domain.Message{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		Content:      m.Content,
		Status:       domain.MessageStatus(m.Status),
		Template:     domain.MessageTemplate(m.Template),
		CreatedAt:    m.CreatedAt.Local(),
		SentAt:       localPtr(m.SentAt),
	}
	if !m.Metadata.IsZero() {
		d.Metadata = &domain.MessageMetadata{
			Acknowledgment: m.Metadata.Acknowledgment,
			Compliment:     m.Metadata.Compliment,
			Ask:            m.Metadata.Ask,
		}
	}
	return d
}

func (r *messageRepository) toModel(d *domain.Message) *model.Message {
	m := &model.Message{
		ID:           d.ID,
		ConnectionID: d.ConnectionID,
		Content:      d.Content,
		Status:       string(d.Status),
		Template:     string(d.Template),
		CreatedAt:    utc(d.CreatedAt),
		SentAt:       utcPtr(d.SentAt),
	}
	if d.Metadata != nil {
		m.Metadata = &model.MessageMetadata{
			Acknowledgment: d.Metadata.Acknowledgment,
			Compliment:     d.Metadata.Compliment,
			Ask:            d.Metadata.Ask,
		}
	}
	return m
}

// Create 创建消息
func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	m := r.toModel(msg)
	err := r.dao.ExecuteWrite(ctx, model.TableNameMessage, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取消息
func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	var m model.Message
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByConnection 获取联系人的消息
func (r *messageRepository) ListByConnection(ctx context.Context, connectionID string) ([]*domain.Message, error) {
	var ms []*model.Message
	err := r.dao.DB(ctx).
		Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Message, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// MarkSent 标记消息为已发送
func (r *messageRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	return r.dao.ExecuteWrite(ctx, model.TableNameMessage, func(db *gorm.DB) error {
		res := db.Model(&model.Message{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":  string(domain.MessageStatusSent),
			"sent_at": utc(sentAt),
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
