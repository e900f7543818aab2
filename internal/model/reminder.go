package model

import (
	"time"

	"gorm.io/gorm/schema"
)

const TableNameReminder = "reminders"

// Reminder mapped from table <reminders>
type Reminder struct {
	ID           string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConnectionID string     `gorm:"column:connection_id;index:idx_reminder_connection" json:"connectionId"`
	Title        string     `gorm:"column:title" json:"title"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	DueDate      time.Time  `gorm:"column:due_date;index:idx_reminder_due" json:"dueDate"`
	Completed    bool       `gorm:"column:completed;default:false" json:"completed"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completedAt"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
}

// TableName Reminder's table name
func (*Reminder) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameReminder)
}

// ReminderWithName is a reminder joined with its connection's name
type ReminderWithName struct {
	Reminder
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}
