package model

import (
	"time"

	"gorm.io/gorm/schema"
)

const (
	TableNameTag           = "tags"
	TableNameConnectionTag = "connection_tags"
)

// Tag mapped from table <tags>
type Tag struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex:idx_tag_name;size:191" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
}

// TableName Tag's table name
func (*Tag) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameTag)
}

// ConnectionTag mapped from table <connection_tags>
type ConnectionTag struct {
	ConnectionID string `gorm:"column:connection_id;primaryKey;size:32" json:"connectionId"`
	TagID        string `gorm:"column:tag_id;primaryKey;size:36" json:"tagId"`
}

// TableName ConnectionTag's table name
func (*ConnectionTag) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameConnectionTag)
}
