package service

import (
	"context"
	"sort"
	"strings"

	"github.com/zachlandes/2ml-crm/internal/domain"
)

const timelinePreviewLen = 100

// BuildTimeline merges notes, messages and reminders into one feed, newest first.
// A sent message already quoted by a message_sent note is left out.
// BuildTimeline 合并笔记、消息与提醒为时间线，按时间倒序
func BuildTimeline(notes []*domain.Note, messages []*domain.Message, reminders []*domain.Reminder) []domain.Activity {
	out := make([]domain.Activity, 0, len(notes)+len(messages)+len(reminders))

	for _, n := range notes {
		out = append(out, domain.Activity{
			ID:           n.ID,
			ConnectionID: n.ConnectionID,
			Content:      n.Content,
			Type:         string(n.Type),
			CreatedAt:    n.CreatedAt,
		})
	}

	for _, m := range messages {
		if m.IsSent() && quotedBySentNote(m, notes) {
			continue
		}
		content := m.Content
		if len([]rune(content)) > timelinePreviewLen {
			content = truncateRunes(content, timelinePreviewLen) + "..."
		}
		at := m.CreatedAt
		if m.SentAt != nil {
			at = *m.SentAt
		}
		out = append(out, domain.Activity{
			ID:           m.ID,
			ConnectionID: m.ConnectionID,
			Content:      content,
			Type:         string(domain.ActivityMessage),
			CreatedAt:    at,
			Status:       string(m.Status),
		})
	}

	for _, r := range reminders {
		content := "Reminder: " + r.Title
		kind := domain.ActivityReminderCreated
		if r.Completed {
			content += " (Completed)"
			kind = domain.ActivityReminderCompleted
		}
		out = append(out, domain.Activity{
			ID:           r.ID,
			ConnectionID: r.ConnectionID,
			Content:      content,
			Type:         string(kind),
			CreatedAt:    r.CreatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func quotedBySentNote(m *domain.Message, notes []*domain.Note) bool {
	prefix := truncateRunes(m.Content, sentNotePrefixLen)
	for _, n := range notes {
		if n.Type == domain.NoteTypeMessageSent && strings.Contains(n.Content, prefix) {
			return true
		}
	}
	return false
}

// ActivityService 时间线服务接口
type ActivityService interface {
	// GetConnectionActivity 获取联系人时间线
	GetConnectionActivity(ctx context.Context, connectionID string) ([]domain.Activity, error)
}

type activityService struct {
	connections ConnectionService
	messages    MessageService
	reminders   ReminderService
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(connections ConnectionService, messages MessageService, reminders ReminderService) ActivityService {
	return &activityService{connections: connections, messages: messages, reminders: reminders}
}

func (s *activityService) GetConnectionActivity(ctx context.Context, connectionID string) ([]domain.Activity, error) {
	if _, err := s.connections.GetConnection(ctx, connectionID); err != nil {
		return nil, err
	}
	notes, err := s.connections.GetConnectionNotes(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.GetConnectionMessages(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	rems, err := s.reminders.GetConnectionReminders(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(notes, msgs, rems), nil
}
