package service

import (
	"context"
	"strings"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/google/uuid"
)

// TagService 标签服务接口
type TagService interface {
	// CreateTag 按名称创建标签，名称已存在时返回已有标签
	CreateTag(ctx context.Context, name string) (*domain.Tag, error)

	// AddTagToConnection 为联系人添加标签
	AddTagToConnection(ctx context.Context, connectionID, tagID string) error

	// GetAllTags 获取全部标签
	GetAllTags(ctx context.Context) ([]*domain.Tag, error)

	// GetConnectionTags 获取联系人的标签
	GetConnectionTags(ctx context.Context, connectionID string) ([]*domain.Tag, error)

	// RemoveTagFromConnection 移除联系人的标签
	RemoveTagFromConnection(ctx context.Context, connectionID, tagID string) error

	// GetConnectionsByTags filters by any (OR) or all (AND) of tagIDs
	GetConnectionsByTags(ctx context.Context, tagIDs []string, mode domain.TagMatchMode) ([]*domain.Connection, error)
}

type tagService struct {
	repo     domain.TagRepository
	connRepo domain.ConnectionRepository
	tracker  ActionTracker
	now      func() time.Time
}

// NewTagService 创建 TagService 实例
func NewTagService(repo domain.TagRepository, connRepo domain.ConnectionRepository, tracker ActionTracker) TagService {
	return &tagService{repo: repo, connRepo: connRepo, tracker: tracker, now: time.Now}
}

func (s *tagService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, code.ErrorTagNameEmpty
	}
	tag, err := s.repo.CreateIfAbsent(ctx, &domain.Tag{ID: uuid.New().String(), Name: name, CreatedAt: s.now()})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return tag, nil
}

func (s *tagService) AddTagToConnection(ctx context.Context, connectionID, tagID string) error {
	if _, err := s.connRepo.GetByID(ctx, connectionID); err != nil {
		return mapRepoErr(err, code.ErrorConnectionNotFound)
	}
	if _, err := s.repo.GetByID(ctx, tagID); err != nil {
		return mapRepoErr(err, code.ErrorTagNotFound)
	}
	if err := s.repo.Attach(ctx, connectionID, tagID); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	s.tracker.Track(ctx, domain.ActionConnectionTagged)
	return nil
}

func (s *tagService) GetAllTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return tags, nil
}

func (s *tagService) GetConnectionTags(ctx context.Context, connectionID string) ([]*domain.Tag, error) {
	tags, err := s.repo.ListByConnection(ctx, connectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return tags, nil
}

func (s *tagService) RemoveTagFromConnection(ctx context.Context, connectionID, tagID string) error {
	if err := s.repo.Detach(ctx, connectionID, tagID); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

func (s *tagService) GetConnectionsByTags(ctx context.Context, tagIDs []string, mode domain.TagMatchMode) ([]*domain.Connection, error) {
	ids := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, code.ErrorTagIDsRequired
	}
	if mode != domain.TagMatchAll {
		mode = domain.TagMatchAny
	}
	conns, err := s.connRepo.ListByTags(ctx, ids, mode)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return conns, nil
}
