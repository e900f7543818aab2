package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connectionId"`
	Content      string    `json:"content"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NoteCreateRequest 添加笔记请求参数
type NoteCreateRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=note note_updated quick_note message_sent status_updated"`
}

// IDRequest is the {id} body shared by the action-style endpoints
// IDRequest 仅包含 id 的请求参数
type IDRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

func NewNoteDTOs(list []*domain.Note) []*NoteDTO {
	out := make([]*NoteDTO, 0, len(list))
	for _, n := range list {
		out = append(out, &NoteDTO{
			ID:           n.ID,
			ConnectionID: n.ConnectionID,
			Content:      n.Content,
			Type:         string(n.Type),
			CreatedAt:    n.CreatedAt,
		})
	}
	return out
}
