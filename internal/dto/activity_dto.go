package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

// ActivityDTO 时间线条目
type ActivityDTO struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connectionId"`
	Content      string    `json:"content"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status,omitempty"`
}

func NewActivityDTOs(list []domain.Activity) []*ActivityDTO {
	out := make([]*ActivityDTO, 0, len(list))
	for _, a := range list {
		out = append(out, &ActivityDTO{
			ID:           a.ID,
			ConnectionID: a.ConnectionID,
			Content:      a.Content,
			Type:         a.Type,
			CreatedAt:    a.CreatedAt,
			Status:       a.Status,
		})
	}
	return out
}
