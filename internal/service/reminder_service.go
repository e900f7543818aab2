package service

import (
	"context"
	"strings"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"
	"github.com/zachlandes/2ml-crm/pkg/util"

	"github.com/google/uuid"
)

// ReminderService 提醒服务接口
type ReminderService interface {
	// CreateReminder 创建提醒，标题和到期时间必填
	CreateReminder(ctx context.Context, connectionID, title string, dueDate time.Time, description string) (*domain.Reminder, error)

	// GetConnectionReminders 获取联系人的提醒
	GetConnectionReminders(ctx context.Context, connectionID string) ([]*domain.Reminder, error)

	// GetReminder 获取提醒
	GetReminder(ctx context.Context, id string) (*domain.Reminder, error)

	// CompleteReminder 完成提醒
	CompleteReminder(ctx context.Context, id string) (*domain.Reminder, error)

	// UncompleteReminder 取消完成
	UncompleteReminder(ctx context.Context, id string) (*domain.Reminder, error)

	// UpdateReminder 部分更新
	UpdateReminder(ctx context.Context, id string, u domain.ReminderUpdate) (*domain.Reminder, error)

	// DeleteReminder 删除提醒
	DeleteReminder(ctx context.Context, id string) error

	// GetUpcomingReminders returns open reminders due today or later
	GetUpcomingReminders(ctx context.Context, limit int) ([]*domain.Reminder, error)

	// GetTodayReminders returns open reminders whose local due date is today
	GetTodayReminders(ctx context.Context) ([]*domain.Reminder, error)

	// GetOverdueReminders returns open reminders whose local due date is before today
	GetOverdueReminders(ctx context.Context) ([]*domain.Reminder, error)

	// ClearRemindersOnStatusChange 状态变更时完成全部未完成提醒，返回数量
	ClearRemindersOnStatusChange(ctx context.Context, connectionID string) (int64, error)
}

type reminderService struct {
	repo     domain.ReminderRepository
	connRepo domain.ConnectionRepository
	tracker  ActionTracker
	config   *ServiceConfig
	now      func() time.Time
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(repo domain.ReminderRepository, connRepo domain.ConnectionRepository, tracker ActionTracker, cfg *ServiceConfig) ReminderService {
	return &reminderService{repo: repo, connRepo: connRepo, tracker: tracker, config: cfg, now: time.Now}
}

func (s *reminderService) CreateReminder(ctx context.Context, connectionID, title string, dueDate time.Time, description string) (*domain.Reminder, error) {
	title = strings.TrimSpace(title)
	if connectionID == "" || title == "" || dueDate.IsZero() {
		return nil, code.ErrorReminderFieldsEmpty
	}
	if _, err := s.connRepo.GetByID(ctx, connectionID); err != nil {
		return nil, mapRepoErr(err, code.ErrorConnectionNotFound)
	}

	r, err := s.repo.Create(ctx, &domain.Reminder{
		ID:           uuid.New().String(),
		ConnectionID: connectionID,
		Title:        title,
		Description:  description,
		DueDate:      dueDate,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	s.tracker.Track(ctx, domain.ActionReminderCreated)
	return r, nil
}

func (s *reminderService) GetConnectionReminders(ctx context.Context, connectionID string) ([]*domain.Reminder, error) {
	list, err := s.repo.ListByConnection(ctx, connectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *reminderService) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, code.ErrorReminderNotFound)
	}
	return r, nil
}

func (s *reminderService) CompleteReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	now := s.now()
	if err := s.repo.SetCompleted(ctx, id, true, &now); err != nil {
		return nil, mapRepoErr(err, code.ErrorReminderNotFound)
	}
	s.tracker.Track(ctx, domain.ActionReminderCompleted)
	return s.GetReminder(ctx, id)
}

func (s *reminderService) UncompleteReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	if err := s.repo.SetCompleted(ctx, id, false, nil); err != nil {
		return nil, mapRepoErr(err, code.ErrorReminderNotFound)
	}
	return s.GetReminder(ctx, id)
}

func (s *reminderService) UpdateReminder(ctx context.Context, id string, u domain.ReminderUpdate) (*domain.Reminder, error) {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return nil, code.ErrorReminderFieldsEmpty
	}
	if u.DueDate != nil && u.DueDate.IsZero() {
		return nil, code.ErrorInvalidDueDate
	}
	if err := s.repo.Update(ctx, id, u); err != nil {
		return nil, mapRepoErr(err, code.ErrorReminderNotFound)
	}
	return s.GetReminder(ctx, id)
}

func (s *reminderService) DeleteReminder(ctx context.Context, id string) error {
	return mapRepoErr(s.repo.Delete(ctx, id), code.ErrorReminderNotFound)
}

func (s *reminderService) GetUpcomingReminders(ctx context.Context, limit int) ([]*domain.Reminder, error) {
	if limit <= 0 {
		limit = s.config.upcomingLimit()
	}
	list, err := s.repo.ListOpenDueBetween(ctx, util.GetZeroTime(s.now().Local()), time.Time{}, limit)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *reminderService) GetTodayReminders(ctx context.Context) ([]*domain.Reminder, error) {
	start := util.GetZeroTime(s.now().Local())
	list, err := s.repo.ListOpenDueBetween(ctx, start, start.AddDate(0, 0, 1), 0)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *reminderService) GetOverdueReminders(ctx context.Context) ([]*domain.Reminder, error) {
	start := util.GetZeroTime(s.now().Local())
	list, err := s.repo.ListOpenDueBetween(ctx, time.Time{}, start, 0)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *reminderService) ClearRemindersOnStatusChange(ctx context.Context, connectionID string) (int64, error) {
	return s.repo.CompleteOpenByConnection(ctx, connectionID, s.now())
}
