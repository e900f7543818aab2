package model

import (
	"time"

	"gorm.io/gorm/schema"
)

const TableNameNote = "notes"

// Note mapped from table <notes>
type Note struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConnectionID string    `gorm:"column:connection_id;index:idx_note_connection" json:"connectionId"`
	Content      string    `gorm:"column:content;type:text" json:"content"`
	Type         string    `gorm:"column:type;size:20;default:note" json:"type"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
}

// TableName Note's table name
func (*Note) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameNote)
}
