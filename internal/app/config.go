// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zachlandes/2ml-crm/internal/dao"
	"github.com/zachlandes/2ml-crm/internal/notify"
	"github.com/zachlandes/2ml-crm/pkg/limiter"
	"github.com/zachlandes/2ml-crm/pkg/util"
	"github.com/zachlandes/2ml-crm/pkg/workerpool"
	"github.com/zachlandes/2ml-crm/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Import   ImportConfig   `yaml:"import"`
	Reminder ReminderConfig `yaml:"reminder"`
	Notify   NotifyConfig   `yaml:"notify"`
	Limiter  LimiterConfig  `yaml:"limiter"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到控制台
	File string `yaml:"file" default:"storage/logs/crm.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"false"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":3000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址，为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:3001"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite | mysql | postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path     string `yaml:"path" default:"storage/database/crm.sqlite3"`
	UserName string `yaml:"user-name"`
	Password string `yaml:"password"`
	// Host host:port
	Host        string `yaml:"host"`
	Name        string `yaml:"name"`
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool   `yaml:"auto-migrate" default:"true"`
	Charset     string `yaml:"charset"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m、1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认请求上下文超时（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// Signature ACA 消息落款
	Signature  string           `yaml:"signature" default:"Zach"`
	WorkerPool WorkerPoolConfig `yaml:"worker-pool"`
	WriteQueue WriteQueueConfig `yaml:"write-queue"`
}

// WorkerPoolConfig Worker Pool 配置
type WorkerPoolConfig struct {
	MaxWorkers int `yaml:"max-workers" default:"8"`
	QueueSize  int `yaml:"queue-size" default:"256"`
}

// WriteQueueConfig Write Queue 配置
type WriteQueueConfig struct {
	Capacity int    `yaml:"capacity" default:"100"`
	Timeout  string `yaml:"timeout" default:"30s"`
}

// ImportConfig LinkedIn 导出文件导入配置
type ImportConfig struct {
	// CSVPath 导出文件路径
	CSVPath string `yaml:"csv-path" default:"Connections.csv"`
	// SkipLines 表头前的说明行数
	SkipLines int `yaml:"skip-lines" default:"5"`
	// OnStartup 启动时若库为空则导入
	OnStartup bool `yaml:"on-startup" default:"true"`
}

// ReminderConfig 提醒检查配置
type ReminderConfig struct {
	// CheckInterval 检查间隔，支持格式：5m、1h
	CheckInterval string `yaml:"check-interval" default:"5m"`
	// Cron 五段式 cron 表达式，非空时覆盖 CheckInterval
	Cron          string `yaml:"cron"`
	StartupRun    bool   `yaml:"startup-run" default:"true"`
	UpcomingLimit int    `yaml:"upcoming-limit" default:"10"`
}

// NotifyConfig 通知配置
type NotifyConfig struct {
	Websocket WebsocketNotifyConfig `yaml:"websocket"`
	Mail      MailNotifyConfig      `yaml:"mail"`
}

type WebsocketNotifyConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// MailNotifyConfig SMTP 摘要邮件配置
type MailNotifyConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port" default:"587"`
	UserName string   `yaml:"user-name"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
	// BaseURL 邮件中链接的前缀
	BaseURL string `yaml:"base-url" default:"http://localhost:3000"`
}

// LimiterConfig 令牌桶限流配置
type LimiterConfig struct {
	Enabled      bool   `yaml:"enabled" default:"true"`
	FillInterval string `yaml:"fill-interval" default:"1s"`
	Capacity     int64  `yaml:"capacity" default:"100"`
	Quantum      int64  `yaml:"quantum" default:"100"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 启用 opentracing span 与 gorm 追踪插件
	Enabled bool `yaml:"enabled" default:"false"`
	// Header 追踪 ID 请求头名称
	Header string `yaml:"header" default:"X-Trace-ID"`
	// ServiceName jaeger 服务名
	ServiceName string `yaml:"service-name" default:"2ml-crm"`
	// AgentHost jaeger agent 地址，为空时使用 jaeger 默认值
	AgentHost string `yaml:"agent-host"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// no second defaults.Set pass: it would turn an explicit "false" back into a true default
	// 不再二次填充默认值，否则显式写 false 的布尔项会被重置为 true

	if err := c.Validate(); err != nil {
		return nil, realpath, err
	}

	return c, realpath, nil
}

// Validate checks values that cannot be expressed by struct tags
// Validate 校验无法由默认值表达的配置
func (c *AppConfig) Validate() error {
	switch c.Database.Type {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("database.type %q is not one of sqlite, mysql, postgres", c.Database.Type)
	}
	if _, err := util.ParseDuration(c.Reminder.CheckInterval); err != nil {
		return errors.Wrap(err, "reminder.check-interval")
	}
	if c.Reminder.Cron != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Reminder.Cron); err != nil {
			return errors.Wrapf(err, "reminder.cron %q", c.Reminder.Cron)
		}
	}
	if c.Limiter.Enabled {
		if _, err := util.ParseDuration(c.Limiter.FillInterval); err != nil {
			return errors.Wrap(err, "limiter.fill-interval")
		}
	}
	if c.Notify.Mail.Enabled && (c.Notify.Mail.Host == "" || len(c.Notify.Mail.To) == 0) {
		return errors.New("notify.mail requires host and at least one recipient")
	}
	return nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPool.MaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPool.MaxWorkers
	}
	if c.App.WorkerPool.QueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPool.QueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueue.Capacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueue.Capacity
	}
	if c.App.WriteQueue.Timeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueue.Timeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	return cfg
}

// GetDatabaseConfig 转换为 DAO 层数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
		Tracing:         c.Tracer.Enabled,
	}
}

// GetMailConfig 获取邮件通知配置
func (c *AppConfig) GetMailConfig() notify.MailConfig {
	m := c.Notify.Mail
	return notify.MailConfig{
		Host:     m.Host,
		Port:     m.Port,
		UserName: m.UserName,
		Password: m.Password,
		From:     m.From,
		To:       m.To,
		BaseURL:  m.BaseURL,
	}
}

// GetLimiterRule 获取全局限流规则
func (c *AppConfig) GetLimiterRule() limiter.BucketRule {
	interval, err := util.ParseDuration(c.Limiter.FillInterval)
	if err != nil || interval <= 0 {
		interval = time.Second
	}
	return limiter.BucketRule{
		Key:          "global",
		FillInterval: interval,
		Capacity:     c.Limiter.Capacity,
		Quantum:      c.Limiter.Quantum,
	}
}

// ContextTimeout 请求上下文超时
func (c *AppConfig) ContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
