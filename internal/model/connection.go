package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm/schema"
)

const TableNameConnection = "connections"

// PastPosition mapped from the past_positions JSON column
type PastPosition struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	URL         string `json:"url"`
	ConnectedOn string `json:"connectedOn"`
}

// PastPositions is stored as a JSON array in a text column.
// Malformed content decodes to an empty list instead of failing the row.
type PastPositions []PastPosition

// Value implements driver.Valuer
func (p PastPositions) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	b, err := sonic.Marshal([]PastPosition(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *PastPositions) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = PastPositions{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("past_positions: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*p = PastPositions{}
		return nil
	}
	var out []PastPosition
	if err := sonic.Unmarshal(raw, &out); err != nil {
		decodeLogger.Warn("malformed past_positions, using empty list", zap.Error(err), zap.ByteString("raw", raw))
		*p = PastPositions{}
		return nil
	}
	*p = out
	return nil
}

// Connection mapped from table <connections>
type Connection struct {
	ID              string        `gorm:"column:id;primaryKey;size:32" json:"id"`
	FirstName       string        `gorm:"column:first_name;index:idx_connection_name,priority:1" json:"firstName"`
	LastName        string        `gorm:"column:last_name;index:idx_connection_name,priority:2" json:"lastName"`
	URL             string        `gorm:"column:url" json:"url"`
	Email           string        `gorm:"column:email" json:"email"`
	Company         string        `gorm:"column:company" json:"company"`
	Position        string        `gorm:"column:position" json:"position"`
	ConnectedOn     string        `gorm:"column:connected_on" json:"connectedOn"`
	Notes           string        `gorm:"column:notes;type:text" json:"notes"`
	Status          string        `gorm:"column:status;size:20;default:new" json:"status"`
	LastContactedAt *time.Time    `gorm:"column:last_contacted_at" json:"lastContactedAt"`
	PastPositions   PastPositions `gorm:"column:past_positions;type:text" json:"pastPositions"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
}

// TableName Connection's table name
func (*Connection) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameConnection)
}
