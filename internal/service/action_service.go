package service

import (
	"context"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"
	"github.com/zachlandes/2ml-crm/pkg/logger"

	"go.uber.org/zap"
)

// ActionService 行为计数服务接口
type ActionService interface {
	// TrackAction increments the counter for kind. Failures are logged, never returned.
	// TrackAction 计数加一，失败只记录日志
	TrackAction(ctx context.Context, kind domain.ActionType)

	// GetActionCounts 获取全部计数，按计数倒序
	GetActionCounts(ctx context.Context) ([]*domain.ActionCount, error)

	// GetTotalActionCount 获取计数总和
	GetTotalActionCount(ctx context.Context) (int64, error)

	// GetActionCountByType 获取指定类型计数，不存在时为 0
	GetActionCountByType(ctx context.Context, kind domain.ActionType) (int64, error)
}

type actionService struct {
	repo   domain.ActionRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewActionService 创建 ActionService 实例
func NewActionService(repo domain.ActionRepository, lg *zap.Logger) ActionService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &actionService{repo: repo, logger: lg, now: time.Now}
}

// TrackAction reads then updates or inserts; concurrent increments may be lost
func (s *actionService) TrackAction(ctx context.Context, kind domain.ActionType) {
	now := s.now()
	_, err := s.repo.Get(ctx, domain.CurrentUserID, kind)
	switch {
	case err == nil:
		err = s.repo.Increment(ctx, domain.CurrentUserID, kind, now)
	case isNotFound(err):
		err = s.repo.Insert(ctx, domain.CurrentUserID, kind, now)
	}
	if err != nil {
		s.logger.Warn("ActionService.TrackAction err", zap.String(logger.FieldAction, string(kind)), zap.Error(err))
	}
}

func (s *actionService) GetActionCounts(ctx context.Context) ([]*domain.ActionCount, error) {
	list, err := s.repo.List(ctx, domain.CurrentUserID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *actionService) GetTotalActionCount(ctx context.Context) (int64, error) {
	total, err := s.repo.Sum(ctx, domain.CurrentUserID)
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return total, nil
}

func (s *actionService) GetActionCountByType(ctx context.Context, kind domain.ActionType) (int64, error) {
	if !kind.Valid() {
		return 0, code.ErrorInvalidActionType
	}
	row, err := s.repo.Get(ctx, domain.CurrentUserID, kind)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return row.Count, nil
}

// TaskSubmitter is the part of the worker pool the tracker needs
type TaskSubmitter interface {
	SubmitAsync(ctx context.Context, fn func(context.Context) error) error
}

// ActionTracker records actions off the request path
// ActionTracker 在请求路径之外记录行为计数
type ActionTracker interface {
	Track(ctx context.Context, kind domain.ActionType)
}

type asyncActionTracker struct {
	svc    ActionService
	pool   TaskSubmitter
	logger *zap.Logger
}

// NewActionTracker wraps svc so tracking runs on pool. A nil pool tracks synchronously.
func NewActionTracker(svc ActionService, pool TaskSubmitter, lg *zap.Logger) ActionTracker {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &asyncActionTracker{svc: svc, pool: pool, logger: lg}
}

func (t *asyncActionTracker) Track(ctx context.Context, kind domain.ActionType) {
	// detach from the request so the counter survives the response
	bg := context.WithoutCancel(ctx)
	if t.pool == nil {
		t.svc.TrackAction(bg, kind)
		return
	}
	err := t.pool.SubmitAsync(bg, func(c context.Context) error {
		t.svc.TrackAction(c, kind)
		return nil
	})
	if err != nil {
		t.logger.Debug("action tracker falling back to sync", zap.String(logger.FieldAction, string(kind)), zap.Error(err))
		t.svc.TrackAction(bg, kind)
	}
}
