package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

// ActionCountDTO 行为计数
type ActionCountDTO struct {
	ActionType    string    `json:"actionType"`
	Count         int64     `json:"count"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ActionTrackRequest 记录行为请求参数
type ActionTrackRequest struct {
	ActionType string `json:"actionType" binding:"required,oneof=message_sent reminder_created reminder_completed status_updated connection_tagged note_added"`
}

// ActionCountRequest 计数查询参数，type 为空时返回总数
type ActionCountRequest struct {
	Type string `form:"type"`
}

func NewActionCountDTOs(list []*domain.ActionCount) []*ActionCountDTO {
	out := make([]*ActionCountDTO, 0, len(list))
	for _, a := range list {
		out = append(out, &ActionCountDTO{ActionType: string(a.ActionType), Count: a.Count, LastUpdatedAt: a.LastUpdatedAt})
	}
	return out
}
