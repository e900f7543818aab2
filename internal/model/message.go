package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm/schema"
)

const TableNameMessage = "messages"

// MessageMetadata is the ACA parts of a message, stored as JSON
type MessageMetadata struct {
	Acknowledgment string `json:"acknowledgment"`
	Compliment     string `json:"compliment"`
	Ask            string `json:"ask"`
}

// IsZero 判断元数据是否为空
func (m *MessageMetadata) IsZero() bool {
	return m == nil || (m.Acknowledgment == "" && m.Compliment == "" && m.Ask == "")
}

// Value implements driver.Valuer
func (m *MessageMetadata) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	b, err := sonic.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (m *MessageMetadata) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = MessageMetadata{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("metadata: unsupported type %T", src)
	}
	if err := sonic.Unmarshal(raw, m); err != nil {
		decodeLogger.Warn("malformed message metadata, ignoring", zap.Error(err))
		*m = MessageMetadata{}
	}
	return nil
}

// Message mapped from table <messages>
type Message struct {
	ID           string           `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConnectionID string           `gorm:"column:connection_id;index:idx_message_connection" json:"connectionId"`
	Content      string           `gorm:"column:content;type:text" json:"content"`
	Status       string           `gorm:"column:status;size:10;default:draft" json:"status"`
	Template     string           `gorm:"column:template;size:10" json:"template"`
	Metadata     *MessageMetadata `gorm:"column:metadata;type:text" json:"metadata"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	SentAt       *time.Time       `gorm:"column:sent_at" json:"sentAt"`
}

// TableName Message's table name
func (*Message) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameMessage)
}
