package model

import (
	"time"

	"gorm.io/gorm/schema"
)

const TableNameActionTracker = "action_tracker"

// ActionTracker mapped from table <action_tracker>
type ActionTracker struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        string    `gorm:"column:user_id;size:64;uniqueIndex:idx_action_user_type,priority:1" json:"userId"`
	ActionType    string    `gorm:"column:action_type;size:32;uniqueIndex:idx_action_user_type,priority:2" json:"actionType"`
	Count         int64     `gorm:"column:count;default:0" json:"count"`
	LastUpdatedAt time.Time `gorm:"column:last_updated_at" json:"lastUpdatedAt"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
}

// TableName ActionTracker's table name
func (*ActionTracker) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameActionTracker)
}
