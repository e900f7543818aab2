package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

// TagDTO 标签数据传输对象
type TagDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagCreateRequest 创建标签请求参数
type TagCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagAttachRequest 关联标签请求参数
type TagAttachRequest struct {
	TagID string `json:"tagId" binding:"required"`
}

func NewTagDTO(t *domain.Tag) *TagDTO {
	if t == nil {
		return nil
	}
	return &TagDTO{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func NewTagDTOs(list []*domain.Tag) []*TagDTO {
	out := make([]*TagDTO, 0, len(list))
	for _, t := range list {
		out = append(out, NewTagDTO(t))
	}
	return out
}
