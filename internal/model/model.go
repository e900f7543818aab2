// Package model 定义数据模型
package model

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var decodeLogger = zap.NewNop()

// SetLogger sets the logger used to report malformed JSON columns
// SetLogger 设置 JSON 列解码失败时使用的日志器
func SetLogger(l *zap.Logger) {
	if l != nil {
		decodeLogger = l
	}
}

// prefixed adds the configured table prefix to a fixed table name
func prefixed(namer schema.Namer, name string) string {
	switch ns := namer.(type) {
	case schema.NamingStrategy:
		return ns.TablePrefix + name
	case *schema.NamingStrategy:
		if ns != nil {
			return ns.TablePrefix + name
		}
	}
	return name
}

// TableName 返回 db 命名策略下的实际表名，用于手写 JOIN
func TableName(db *gorm.DB, name string) string {
	return prefixed(db.NamingStrategy, name)
}

// All 返回全部需要迁移的模型
func All() []interface{} {
	return []interface{}{
		&Connection{},
		&Message{},
		&Note{},
		&Tag{},
		&ConnectionTag{},
		&Reminder{},
		&Opportunity{},
		&Referral{},
		&ActionTracker{},
	}
}

// AutoMigrate creates or alters every table. It is idempotent.
// AutoMigrate 创建或更新全部表，可重复执行
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
