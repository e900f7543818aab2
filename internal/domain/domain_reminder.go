package domain

import "time"

// Reminder 提醒领域模型
type Reminder struct {
	ID           string
	ConnectionID string
	Title        string
	Description  string
	DueDate      time.Time
	Completed    bool
	CompletedAt  *time.Time
	CreatedAt    time.Time

	// ConnectionName is populated only by the today/overdue/upcoming queries
	ConnectionName string
}

// ReminderUpdate 部分更新参数，nil 表示不修改
type ReminderUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
}

// IsEmpty 判断是否没有任何更新字段
func (u ReminderUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil
}
