// Package dto holds HTTP request parameters and JSON response shapes
// Package dto 定义 HTTP 请求参数与响应结构
package dto

import (
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

// PastPositionDTO 历史职位
type PastPositionDTO struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	URL         string `json:"url"`
	ConnectedOn string `json:"connectedOn"`
}

// ConnectionDTO 联系人数据传输对象
type ConnectionDTO struct {
	ID              string            `json:"id"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	URL             string            `json:"url"`
	Email           string            `json:"email"`
	Company         string            `json:"company"`
	Position        string            `json:"position"`
	ConnectedOn     string            `json:"connectedOn"`
	Notes           string            `json:"notes"`
	Status          string            `json:"status"`
	LastContactedAt *time.Time        `json:"lastContactedAt"`
	PastPositions   []PastPositionDTO `json:"pastPositions"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ConnectionUpdateRequest is the PATCH body; exactly one of status or notes is expected
// ConnectionUpdateRequest 联系人更新请求参数
type ConnectionUpdateRequest struct {
	Status *string `json:"status" binding:"omitempty,crm_status"`
	Notes  *string `json:"notes"`
}

// ConnectionsByTagsRequest 按标签筛选请求参数
type ConnectionsByTagsRequest struct {
	TagIDs string `json:"tagIds" form:"tagIds" binding:"required"`
	Mode   string `json:"mode" form:"mode"`
}

// NewConnectionDTO 领域模型转 DTO
func NewConnectionDTO(c *domain.Connection) *ConnectionDTO {
	if c == nil {
		return nil
	}
	out := &ConnectionDTO{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		URL:             c.URL,
		Email:           c.Email,
		Company:         c.Company,
		Position:        c.Position,
		ConnectedOn:     c.ConnectedOn,
		Notes:           c.Notes,
		Status:          string(c.Status),
		LastContactedAt: c.LastContactedAt,
		PastPositions:   make([]PastPositionDTO, 0, len(c.PastPositions)),
		CreatedAt:       c.CreatedAt,
	}
	for _, p := range c.PastPositions {
		out.PastPositions = append(out.PastPositions, PastPositionDTO(p))
	}
	return out
}

// NewConnectionDTOs 批量转换
func NewConnectionDTOs(list []*domain.Connection) []*ConnectionDTO {
	out := make([]*ConnectionDTO, 0, len(list))
	for _, c := range list {
		out = append(out, NewConnectionDTO(c))
	}
	return out
}
