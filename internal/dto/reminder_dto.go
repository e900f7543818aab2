package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/util"
)

// ReminderDTO 提醒数据传输对象
type ReminderDTO struct {
	ID             string     `json:"id"`
	ConnectionID   string     `json:"connectionId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        time.Time  `json:"dueDate"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	ConnectionName string     `json:"connectionName,omitempty"`
}

// ReminderCreateRequest 创建提醒请求参数，dueDate 支持 RFC3339 或 2006-01-02
type ReminderCreateRequest struct {
	ConnectionID string `json:"connectionId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	DueDate      string `json:"dueDate" binding:"required"`
	Description  string `json:"description"`
}

// ReminderUpdateFields 可更新字段
type ReminderUpdateFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// ReminderUpdateRequest 更新提醒请求参数
type ReminderUpdateRequest struct {
	ID      string                `json:"id" binding:"required"`
	Updates *ReminderUpdateFields `json:"updates" binding:"required"`
}

// UpcomingRequest 即将到期查询参数
type UpcomingRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ToDomain parses the due date; the returned error is the raw parse failure
func (r *ReminderUpdateFields) ToDomain() (domain.ReminderUpdate, error) {
	u := domain.ReminderUpdate{Title: r.Title, Description: r.Description}
	if r.DueDate != nil {
		t, err := util.ParseDueDate(*r.DueDate)
		if err != nil {
			return u, err
		}
		u.DueDate = &t
	}
	return u, nil
}

func NewReminderDTO(r *domain.Reminder) *ReminderDTO {
	if r == nil {
		return nil
	}
	return &ReminderDTO{
		ID:             r.ID,
		ConnectionID:   r.ConnectionID,
		Title:          r.Title,
		Description:    r.Description,
		DueDate:        r.DueDate,
		Completed:      r.Completed,
		CompletedAt:    r.CompletedAt,
		CreatedAt:      r.CreatedAt,
		ConnectionName: r.ConnectionName,
	}
}

func NewReminderDTOs(list []*domain.Reminder) []*ReminderDTO {
	out := make([]*ReminderDTO, 0, len(list))
	for _, r := range list {
		out = append(out, NewReminderDTO(r))
	}
	return out
}
