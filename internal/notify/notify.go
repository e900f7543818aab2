// Package notify delivers due-reminder notifications to connected clients and by mail.
// Package notify 推送到期提醒通知
package notify

import (
	"context"

	"github.com/zachlandes/2ml-crm/pkg/logger"

	"go.uber.org/zap"
)

// Notification is one due reminder as shown to the user
type Notification struct {
	ReminderID string `json:"reminderId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	URL        string `json:"url"`
}

// Notifier delivers a batch of notifications
// Notifier 通知发送接口
type Notifier interface {
	Name() string
	Notify(ctx context.Context, batch []Notification) error
}

// Fanout sends every batch to each notifier in turn. A failing notifier does not stop the rest.
// Fanout 依次调用全部通知器
type Fanout struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewFanout 创建 Fanout，忽略 nil 通知器
func NewFanout(lg *zap.Logger, notifiers ...Notifier) *Fanout {
	if lg == nil {
		lg = zap.NewNop()
	}
	f := &Fanout{logger: lg}
	for _, n := range notifiers {
		if n != nil {
			f.notifiers = append(f.notifiers, n)
		}
	}
	return f
}

func (f *Fanout) Name() string {
	return "fanout"
}

// Len 返回通知器数量
func (f *Fanout) Len() int {
	return len(f.notifiers)
}

// Notify returns the first error after trying every notifier
func (f *Fanout) Notify(ctx context.Context, batch []Notification) error {
	if len(batch) == 0 {
		return nil
	}
	var first error
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, batch); err != nil {
			f.logger.Warn("notifier failed", zap.String("notifier", n.Name()), zap.Int(logger.FieldCount, len(batch)), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
