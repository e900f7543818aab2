package domain

import (
	"strings"
	"time"
)

// TagMatchMode 标签筛选模式
type TagMatchMode string

const (
	TagMatchAny TagMatchMode = "OR"
	TagMatchAll TagMatchMode = "AND"
)

// ParseTagMatchMode treats anything other than AND (any case) as OR
func ParseTagMatchMode(s string) TagMatchMode {
	if strings.EqualFold(strings.TrimSpace(s), string(TagMatchAll)) {
		return TagMatchAll
	}
	return TagMatchAny
}

// Tag 标签领域模型
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
