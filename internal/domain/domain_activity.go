package domain

import "time"

// ActivityType 时间线条目类型
type ActivityType string

const (
	ActivityMessage           ActivityType = "message"
	ActivityReminderCreated   ActivityType = "reminder_created"
	ActivityReminderCompleted ActivityType = "reminder_completed"
)

// Activity 时间线条目
type Activity struct {
	ID           string
	ConnectionID string
	Content      string
	Type         string
	CreatedAt    time.Time
	// Status is set for message items only
	Status string
}
