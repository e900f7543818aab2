package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

// MessageMetadataDTO ACA 消息组成部分
type MessageMetadataDTO struct {
	Acknowledgment string `json:"acknowledgment"`
	Compliment     string `json:"compliment"`
	Ask            string `json:"ask"`
}

// MessageDTO 消息数据传输对象
type MessageDTO struct {
	ID           string              `json:"id"`
	ConnectionID string              `json:"connectionId"`
	Content      string              `json:"content"`
	Status       string              `json:"status"`
	Template     string              `json:"template"`
	Metadata     *MessageMetadataDTO `json:"metadata"`
	CreatedAt    time.Time           `json:"createdAt"`
	SentAt       *time.Time          `json:"sentAt"`
}

// AcaMessageRequest ACA 消息请求参数
type AcaMessageRequest struct {
	Acknowledgment string `json:"acknowledgment" binding:"required"`
	Compliment     string `json:"compliment" binding:"required"`
	Ask            string `json:"ask" binding:"required"`
}

// CustomMessageRequest 自定义消息请求参数
type CustomMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SentNotification is echoed to the client after a message is marked as sent
type SentNotification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewMessageDTO(m *domain.Message) *MessageDTO {
	if m == nil {
		return nil
	}
	out := &MessageDTO{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		Content:      m.Content,
		Status:       string(m.Status),
		Template:     string(m.Template),
		CreatedAt:    m.CreatedAt,
		SentAt:       m.SentAt,
	}
	if m.Metadata != nil {
		md := MessageMetadataDTO(*m.Metadata)
		out.Metadata = &md
	}
	return out
}

func NewMessageDTOs(list []*domain.Message) []*MessageDTO {
	out := make([]*MessageDTO, 0, len(list))
	for _, m := range list {
		out = append(out, NewMessageDTO(m))
	}
	return out
}
