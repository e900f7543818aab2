package domain

import (
	"context"
	"time"
)

// ConnectionRepository 联系人仓储接口
type ConnectionRepository interface {
	// GetByID 根据ID获取联系人
	GetByID(ctx context.Context, id string) (*Connection, error)

	// List 获取全部联系人，按名排序
	List(ctx context.Context) ([]*Connection, error)

	// Count 获取联系人数量
	Count(ctx context.Context) (int64, error)

	// Upsert 批量插入或替换联系人
	Upsert(ctx context.Context, conns []*Connection) error

	// UpdateNotes 更新联系人备注
	UpdateNotes(ctx context.Context, id, notes string) error

	// UpdateStatus 更新状态并刷新最后联系时间
	UpdateStatus(ctx context.Context, id string, status ConnectionStatus, contactedAt time.Time) error

	// TouchLastContacted 刷新最后联系时间
	TouchLastContacted(ctx context.Context, id string, at time.Time) error

	// ListByTags 按标签筛选联系人
	ListByTags(ctx context.Context, tagIDs []string, mode TagMatchMode) ([]*Connection, error)
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id string) (*Note, error)

	// ListByConnection 获取联系人的笔记，按创建时间倒序
	ListByConnection(ctx context.Context, connectionID string) ([]*Note, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id string) error
}

// MessageRepository 消息仓储接口
type MessageRepository interface {
	// Create 创建消息
	Create(ctx context.Context, msg *Message) (*Message, error)

	// GetByID 根据ID获取消息
	GetByID(ctx context.Context, id string) (*Message, error)

	// ListByConnection 获取联系人的消息，按创建时间倒序
	ListByConnection(ctx context.Context, connectionID string) ([]*Message, error)

	// MarkSent 标记消息为已发送
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
}

// TagRepository 标签仓储接口
type TagRepository interface {
	// CreateIfAbsent 按名称插入，已存在则返回原记录
	CreateIfAbsent(ctx context.Context, tag *Tag) (*Tag, error)

	// GetByID 根据ID获取标签
	GetByID(ctx context.Context, id string) (*Tag, error)

	// List 获取全部标签，按名称排序
	List(ctx context.Context) ([]*Tag, error)

	// ListByConnection 获取联系人的标签，按名称排序
	ListByConnection(ctx context.Context, connectionID string) ([]*Tag, error)

	// Attach 关联标签与联系人，已关联则忽略
	Attach(ctx context.Context, connectionID, tagID string) error

	// Detach 解除标签与联系人的关联
	Detach(ctx context.Context, connectionID, tagID string) error
}

// ReminderRepository 提醒仓储接口
type ReminderRepository interface {
	// Create 创建提醒
	Create(ctx context.Context, r *Reminder) (*Reminder, error)

	// GetByID 根据ID获取提醒
	GetByID(ctx context.Context, id string) (*Reminder, error)

	// ListByConnection 获取联系人的提醒，未完成优先，按到期时间升序
	ListByConnection(ctx context.Context, connectionID string) ([]*Reminder, error)

	// SetCompleted 设置完成状态，completedAt 为 nil 表示取消完成
	SetCompleted(ctx context.Context, id string, completed bool, completedAt *time.Time) error

	// Update 部分更新提醒
	Update(ctx context.Context, id string, u ReminderUpdate) error

	// Delete 删除提醒
	Delete(ctx context.Context, id string) error

	// CompleteOpenByConnection 完成联系人全部未完成提醒，返回影响行数
	CompleteOpenByConnection(ctx context.Context, connectionID string, at time.Time) (int64, error)

	// ListOpenDueBetween 获取到期时间在 [from, to) 内的未完成提醒，附带联系人姓名
	// 零值表示不设边界
	ListOpenDueBetween(ctx context.Context, from, to time.Time, limit int) ([]*Reminder, error)
}

// ActionRepository 行为计数仓储接口
type ActionRepository interface {
	// Get 获取指定用户与类型的计数
	Get(ctx context.Context, userID string, action ActionType) (*ActionCount, error)

	// Increment 计数加一
	Increment(ctx context.Context, userID string, action ActionType, at time.Time) error

	// Insert 插入计数为 1 的新记录
	Insert(ctx context.Context, userID string, action ActionType, at time.Time) error

	// List 获取全部计数，按计数倒序
	List(ctx context.Context, userID string) ([]*ActionCount, error)

	// Sum 计数总和
	Sum(ctx context.Context, userID string) (int64, error)
}

// OpportunityRepository 商机仓储接口
type OpportunityRepository interface {
	// Create 创建商机
	Create(ctx context.Context, o *Opportunity) (*Opportunity, error)

	// GetByID 根据ID获取商机
	GetByID(ctx context.Context, id string) (*Opportunity, error)

	// ListByConnection 获取联系人的商机，按创建时间倒序
	ListByConnection(ctx context.Context, connectionID string) ([]*Opportunity, error)

	// Update 部分更新商机
	Update(ctx context.Context, id string, u OpportunityUpdate, at time.Time) error

	// Delete 删除商机
	Delete(ctx context.Context, id string) error
}

// ReferralRepository 推荐仓储接口
type ReferralRepository interface {
	// Create 创建推荐
	Create(ctx context.Context, r *Referral) (*Referral, error)

	// ListByConnection 获取联系人的推荐，按创建时间倒序
	ListByConnection(ctx context.Context, connectionID string) ([]*Referral, error)
}
