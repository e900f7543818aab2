// Package domain 定义领域模型和接口
package domain

import (
	"strings"
	"time"
)

// ConnectionStatus 联系人在跟进流程中的阶段
type ConnectionStatus string

const (
	StatusNew         ConnectionStatus = "new"
	StatusContacted   ConnectionStatus = "contacted"
	StatusResponded   ConnectionStatus = "responded"
	StatusMeeting     ConnectionStatus = "meeting"
	StatusOpportunity ConnectionStatus = "opportunity"
	StatusClosed      ConnectionStatus = "closed"
)

var statusRank = map[ConnectionStatus]int{
	StatusNew:         0,
	StatusContacted:   1,
	StatusResponded:   2,
	StatusMeeting:     3,
	StatusOpportunity: 4,
	StatusClosed:      5,
}

// Rank orders statuses along the pipeline. Unknown statuses rank below new.
// Rank 返回状态排序值，未知状态低于 new
func (s ConnectionStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Valid 判断状态是否属于枚举
func (s ConnectionStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// HigherStatus returns whichever of a and b ranks higher, a on ties
func HigherStatus(a, b ConnectionStatus) ConnectionStatus {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// AllStatuses 按流程顺序返回全部状态
func AllStatuses() []ConnectionStatus {
	return []ConnectionStatus{StatusNew, StatusContacted, StatusResponded, StatusMeeting, StatusOpportunity, StatusClosed}
}

// PastPosition is a snapshot of an earlier employment row, produced by duplicate merging
// PastPosition 合并重复行时产生的历史职位快照
type PastPosition struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	URL         string `json:"url"`
	ConnectedOn string `json:"connectedOn"`
}

// Connection 联系人领域模型
type Connection struct {
	ID              string
	FirstName       string
	LastName        string
	URL             string
	Email           string
	Company         string
	Position        string
	ConnectedOn     string
	Notes           string
	Status          ConnectionStatus
	LastContactedAt *time.Time
	PastPositions   []PastPosition
	CreatedAt       time.Time
}

// FullName 返回 "名 姓"
func (c *Connection) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// MergeKey is the case-insensitive identity used when collapsing duplicate rows
func (c *Connection) MergeKey() string {
	return strings.ToLower(c.FirstName + "|" + c.LastName)
}

// StatusUpdateResult 状态更新结果
type StatusUpdateResult struct {
	Connection       *Connection
	ClearedReminders int64
}
