package task

import (
	"context"
	"time"

	"github.com/zachlandes/2ml-crm/pkg/logger"
	"github.com/zachlandes/2ml-crm/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// CronTask is a Task whose schedule may come from a cron expression.
// A non-empty CronSpec replaces LoopInterval.
type CronTask interface {
	Task
	CronSpec() string
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(lg *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Scheduler{
		logger: lg,
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int(logger.FieldCount, len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// startTask 启动单个任务
func (s *Scheduler) startTask(task Task) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-closeSignal:
				cancel()
			case <-ctx.Done():
			}
		}()

		if task.IsStartupRun() {
			go s.runOnce(ctx, task, "startupRun")
		}

		if ct, ok := task.(CronTask); ok && ct.CronSpec() != "" {
			s.runCron(ctx, ct, closeSignal)
			return
		}

		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()

		// 定时执行
		for {
			select {
			case <-ticker.C:
				s.runOnce(ctx, task, "loopRun")
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String(logger.FieldTask, task.Name()), zap.Bool("loopRun", true))
				return
			}
		}
	})
}

func (s *Scheduler) runCron(ctx context.Context, task CronTask, closeSignal <-chan struct{}) {
	c := cron.New()
	if _, err := c.AddFunc(task.CronSpec(), func() { s.runOnce(ctx, task, "cronRun") }); err != nil {
		s.logger.Error("task cron spec invalid", zap.String(logger.FieldTask, task.Name()), zap.String("spec", task.CronSpec()), zap.Error(err))
		return
	}
	c.Start()
	s.logger.Info("task scheduled", zap.String(logger.FieldTask, task.Name()), zap.String("cron", task.CronSpec()))

	<-closeSignal
	<-c.Stop().Done()
	s.logger.Info("task stopped", zap.String(logger.FieldTask, task.Name()), zap.Bool("cronRun", true))
}

// runOnce runs task with panic recovery and records metrics
func (s *Scheduler) runOnce(ctx context.Context, task Task, kind string) {
	start := time.Now()
	defer func() {
		taskDuration.WithLabelValues(task.Name()).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			taskRunCounter.WithLabelValues(task.Name(), "panic").Inc()
			s.logger.Error("task panic",
				zap.String(logger.FieldTask, task.Name()),
				zap.String("type", kind),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	s.logger.Debug("task running", zap.String(logger.FieldTask, task.Name()), zap.String("type", kind))
	if err := task.Run(ctx); err != nil {
		taskRunCounter.WithLabelValues(task.Name(), "error").Inc()
		s.logger.Error("task running error",
			zap.String(logger.FieldTask, task.Name()),
			zap.String("type", kind),
			zap.Error(err))
		return
	}
	taskRunCounter.WithLabelValues(task.Name(), "ok").Inc()
}
