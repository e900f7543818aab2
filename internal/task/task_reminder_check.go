package task

import (
	"context"
	"sync"
	"time"

	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/notify"
	"github.com/zachlandes/2ml-crm/internal/service"
	"github.com/zachlandes/2ml-crm/pkg/logger"
	"github.com/zachlandes/2ml-crm/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultReminderCheckInterval = 5 * time.Minute

// ReminderCheckConfig 提醒检查任务配置
type ReminderCheckConfig struct {
	Interval   time.Duration
	Cron       string
	StartupRun bool
}

// ReminderCheckTask notifies about reminders due today or overdue.
// Each reminder is notified at most once per calendar day.
// ReminderCheckTask 检查到期提醒并推送通知
type ReminderCheckTask struct {
	reminders service.ReminderService
	notifier  notify.Notifier
	config    ReminderCheckConfig
	logger    *zap.Logger
	now       func() time.Time

	mu   sync.Mutex
	day  time.Time
	seen map[string]struct{}
}

// NewReminderCheckTask 创建提醒检查任务
func NewReminderCheckTask(reminders service.ReminderService, notifier notify.Notifier, c ReminderCheckConfig, lg *zap.Logger) *ReminderCheckTask {
	if lg == nil {
		lg = zap.NewNop()
	}
	if c.Interval <= 0 {
		c.Interval = defaultReminderCheckInterval
	}
	return &ReminderCheckTask{
		reminders: reminders,
		notifier:  notifier,
		config:    c,
		logger:    lg,
		now:       time.Now,
		seen:      make(map[string]struct{}),
	}
}

func (t *ReminderCheckTask) Name() string {
	return "ReminderCheck"
}

func (t *ReminderCheckTask) LoopInterval() time.Duration {
	return t.config.Interval
}

func (t *ReminderCheckTask) IsStartupRun() bool {
	return t.config.StartupRun
}

func (t *ReminderCheckTask) CronSpec() string {
	return t.config.Cron
}

// Run 执行一次检查
func (t *ReminderCheckTask) Run(ctx context.Context) error {
	today, err := t.reminders.GetTodayReminders(ctx)
	if err != nil {
		return errors.Wrap(err, "load today reminders")
	}
	overdue, err := t.reminders.GetOverdueReminders(ctx)
	if err != nil {
		return errors.Wrap(err, "load overdue reminders")
	}

	batch := t.pending(append(overdue, today...))
	if len(batch) == 0 {
		return nil
	}

	t.logger.Info("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.Int(logger.FieldCount, len(batch)))
	return t.notifier.Notify(ctx, batch)
}

// pending drops reminders already notified today and marks the rest as seen
func (t *ReminderCheckTask) pending(list []*domain.Reminder) []notify.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := util.GetZeroTime(t.now().Local())
	if !day.Equal(t.day) {
		t.day = day
		t.seen = make(map[string]struct{})
	}

	out := make([]notify.Notification, 0, len(list))
	for _, r := range list {
		if _, ok := t.seen[r.ID]; ok {
			continue
		}
		t.seen[r.ID] = struct{}{}
		out = append(out, ToNotification(r))
	}
	return out
}

// ToNotification 提醒转通知
func ToNotification(r *domain.Reminder) notify.Notification {
	body := r.Description
	if body == "" {
		body = "Due today"
	}
	return notify.Notification{
		ReminderID: r.ID,
		Title:      "Reminder: " + r.Title,
		Body:       body,
		URL:        "/connection/" + r.ConnectionID,
	}
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		rc := appContainer.Config().Reminder
		if appContainer.Notifier == nil || appContainer.Notifier.Len() == 0 {
			appContainer.Logger().Info("reminder check task disabled, no notifier configured")
			return nil, nil
		}
		interval, err := util.ParseDuration(rc.CheckInterval)
		if err != nil {
			return nil, errors.Wrap(err, "reminder.check-interval")
		}
		return NewReminderCheckTask(appContainer.ReminderService, appContainer.Notifier, ReminderCheckConfig{
			Interval:   interval,
			Cron:       rc.Cron,
			StartupRun: rc.StartupRun,
		}, appContainer.Logger()), nil
	})
}
