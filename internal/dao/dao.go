// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/zachlandes/2ml-crm/internal/model"
	"github.com/zachlandes/2ml-crm/pkg/fileurl"
	"github.com/zachlandes/2ml-crm/pkg/util"
	"github.com/zachlandes/2ml-crm/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// WriteKeyConnections serializes writes that touch connections and their reminders
const WriteKeyConnections = "connections"

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
	Tracing         bool
}

// Dao 数据访问对象
type Dao struct {
	Db         *gorm.DB
	ctx        context.Context
	config     *DatabaseConfig
	logger     *zap.Logger
	writeQueue *writequeue.Manager
}

// DaoOption Dao 配置选项
type DaoOption func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(c *DatabaseConfig) DaoOption {
	return func(d *Dao) { d.config = c }
}

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) DaoOption {
	return func(d *Dao) { d.logger = l }
}

// WithWriteQueueManager 设置写队列管理器
func WithWriteQueueManager(m *writequeue.Manager) DaoOption {
	return func(d *Dao) { d.writeQueue = m }
}

// New 创建 Dao 实例
func New(db *gorm.DB, ctx context.Context, opts ...DaoOption) *Dao {
	d := &Dao{Db: db, ctx: ctx}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.ctx == nil {
		d.ctx = context.Background()
	}
	model.SetLogger(d.logger)
	return d
}

// DB returns a session bound to ctx
// DB 获取绑定 ctx 的会话
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = d.ctx
	}
	return d.Db.WithContext(ctx)
}

// Table returns the store's name for a model table, prefix included
// Table 获取带前缀的表名
func (d *Dao) Table(name string) string {
	return model.TableName(d.Db, name)
}

// ExecuteWrite runs fn through the write queue for key when one is configured
// ExecuteWrite 通过写队列串行执行写操作，未配置写队列时直接执行
func (d *Dao) ExecuteWrite(ctx context.Context, key string, fn func(db *gorm.DB) error) error {
	if d.writeQueue == nil {
		return fn(d.DB(ctx))
	}
	return d.writeQueue.Execute(ctx, key, func() error {
		return fn(d.DB(ctx))
	})
}

// NewDBEngineWithConfig opens the configured store and tunes its connection pool
// NewDBEngineWithConfig 根据配置打开数据库并设置连接池
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(c)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if c.RunMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，connections 变为 <prefix>connections
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", c.Type)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if c.Tracing {
		if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil && lg != nil {
			lg.Warn("gorm tracing plugin register failed", zap.Error(err))
		}
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	if lg != nil {
		lg.Info("database ready", zap.String("type", c.Type), zap.String("name", c.Name), zap.String("path", c.Path))
	}
	return db, nil
}

func dialectorFor(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=true&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, charset)), nil
	case "postgres":
		host, port, err := net.SplitHostPort(c.Host)
		if err != nil {
			host, port = c.Host, "5432"
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			host, port, c.UserName, c.Password, c.Name)), nil
	case "sqlite", "":
		if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite directory")
			}
		}
		return sqlite.Open(c.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"), nil
	}
	return nil, fmt.Errorf("unsupported database type %q", c.Type)
}

// utc normalizes timestamps before they reach the store so text-encoded dates compare in order
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func localPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	l := t.Local()
	return &l
}
