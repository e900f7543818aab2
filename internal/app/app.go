// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zachlandes/2ml-crm/internal/dao"
	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/notify"
	"github.com/zachlandes/2ml-crm/internal/service"
	pkgapp "github.com/zachlandes/2ml-crm/pkg/app"
	"github.com/zachlandes/2ml-crm/pkg/workerpool"
	"github.com/zachlandes/2ml-crm/pkg/writequeue"

	"github.com/lxzan/gws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	ConnectionRepo  domain.ConnectionRepository
	NoteRepo        domain.NoteRepository
	MessageRepo     domain.MessageRepository
	TagRepo         domain.TagRepository
	ReminderRepo    domain.ReminderRepository
	ActionRepo      domain.ActionRepository
	OpportunityRepo domain.OpportunityRepository
	ReferralRepo    domain.ReferralRepository

	// Service 层
	ActionService     service.ActionService
	Tracker           service.ActionTracker
	ReminderService   service.ReminderService
	ConnectionService service.ConnectionService
	MessageService    service.MessageService
	ActivityService   service.ActivityService
	TagService        service.TagService
	PipelineService   service.PipelineService

	// 通知
	WSHub    *pkgapp.WebsocketServer
	Notifier *notify.Fanout

	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	dbConfig := cfg.GetDatabaseConfig()
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	// Repository 层
	a.ConnectionRepo = dao.NewConnectionRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.MessageRepo = dao.NewMessageRepository(a.Dao)
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.ReminderRepo = dao.NewReminderRepository(a.Dao)
	a.ActionRepo = dao.NewActionRepository(a.Dao)
	a.OpportunityRepo = dao.NewOpportunityRepository(a.Dao)
	a.ReferralRepo = dao.NewReferralRepository(a.Dao)

	svcConfig := &service.ServiceConfig{
		App: service.AppServiceConfig{
			Signature:     cfg.App.Signature,
			UpcomingLimit: cfg.Reminder.UpcomingLimit,
		},
		Import: service.ImportServiceConfig{
			CSVPath:   cfg.Import.CSVPath,
			SkipLines: cfg.Import.SkipLines,
		},
	}

	// Service 层（依赖注入，顺序由依赖关系决定）
	a.ActionService = service.NewActionService(a.ActionRepo, logger)
	a.Tracker = service.NewActionTracker(a.ActionService, a.workerPool, logger)
	a.ReminderService = service.NewReminderService(a.ReminderRepo, a.ConnectionRepo, a.Tracker, svcConfig)
	a.ConnectionService = service.NewConnectionService(a.ConnectionRepo, a.NoteRepo, a.ReminderService, a.Tracker, svcConfig, logger)
	a.MessageService = service.NewMessageService(a.MessageRepo, a.ConnectionService, a.Tracker, svcConfig, logger)
	a.ActivityService = service.NewActivityService(a.ConnectionService, a.MessageService, a.ReminderService)
	a.TagService = service.NewTagService(a.TagRepo, a.ConnectionRepo, a.Tracker)
	a.PipelineService = service.NewPipelineService(a.OpportunityRepo, a.ReferralRepo, a.ConnectionRepo)

	// 通知渠道
	var notifiers []notify.Notifier
	if cfg.Notify.Websocket.Enabled {
		a.WSHub = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
			GWSOption: gws.ServerOption{
				CheckUtf8Enabled:  true,
				Recovery:          gws.Recovery, // 开启异常恢复
				PermessageDeflate: gws.PermessageDeflate{Enabled: true},
			},
		}, logger)
		notifiers = append(notifiers, notify.NewWebsocketNotifier(a.WSHub, logger))
	}
	if cfg.Notify.Mail.Enabled {
		notifiers = append(notifiers, notify.NewMailNotifier(cfg.GetMailConfig(), logger))
	}
	a.Notifier = notify.NewFanout(logger, notifiers...)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity),
		zap.Int("notifiers", a.Notifier.Len()))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Uptime 运行时长
func (a *App) Uptime() time.Duration {
	return time.Since(a.StartTime)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：WebSocket -> Worker Pool -> Write Queue Manager -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	if a.WSHub != nil {
		a.WSHub.Close()
	}

	// 1. Worker Pool 停止接收任务并等待已有任务（行为计数）完成
	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	// 2. 排空写队列
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	// 3. 等待后台操作
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
