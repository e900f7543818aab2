package domain

import "time"

// MessageStatus 消息状态
type MessageStatus string

const (
	MessageStatusDraft MessageStatus = "draft"
	MessageStatusSent  MessageStatus = "sent"
	// MessageStatusFailed is declared for completeness; no flow sets it
	MessageStatusFailed MessageStatus = "failed"
)

// MessageTemplate 消息模板
type MessageTemplate string

const (
	TemplateACA    MessageTemplate = "aca"
	TemplateCustom MessageTemplate = "custom"
)

// MessageMetadata holds the three parts an ACA message is assembled from
// MessageMetadata ACA 消息的三个组成部分
type MessageMetadata struct {
	Acknowledgment string `json:"acknowledgment"`
	Compliment     string `json:"compliment"`
	Ask            string `json:"ask"`
}

// Message 消息领域模型
type Message struct {
	ID           string
	ConnectionID string
	Content      string
	Status       MessageStatus
	Template     MessageTemplate
	Metadata     *MessageMetadata
	CreatedAt    time.Time
	SentAt       *time.Time
}

// IsSent 判断消息是否已发送
func (m *Message) IsSent() bool {
	return m.Status == MessageStatusSent
}
