package domain

import "time"

// CurrentUserID is the only user this service knows about
const CurrentUserID = "current_user"

// ActionType 行为计数类型
type ActionType string

const (
	ActionMessageSent       ActionType = "message_sent"
	ActionReminderCreated   ActionType = "reminder_created"
	ActionReminderCompleted ActionType = "reminder_completed"
	ActionStatusUpdated     ActionType = "status_updated"
	ActionConnectionTagged  ActionType = "connection_tagged"
	ActionNoteAdded         ActionType = "note_added"
)

// Valid 判断行为类型是否合法
func (a ActionType) Valid() bool {
	switch a {
	case ActionMessageSent, ActionReminderCreated, ActionReminderCompleted,
		ActionStatusUpdated, ActionConnectionTagged, ActionNoteAdded:
		return true
	}
	return false
}

// ActionCount 行为计数
type ActionCount struct {
	UserID        string
	ActionType    ActionType
	Count         int64
	LastUpdatedAt time.Time
	CreatedAt     time.Time
}
