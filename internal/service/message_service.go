package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/code"
	"github.com/zachlandes/2ml-crm/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sentNotePrefixLen is how much of a message the message_sent note quotes
const sentNotePrefixLen = 50

// MessageService 消息服务接口
type MessageService interface {
	// SaveMessage 分配 ID 与创建时间后保存
	SaveMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)

	// CreateAcaMessage builds an acknowledgment, compliment, ask draft
	// CreateAcaMessage 生成 ACA 草稿
	CreateAcaMessage(ctx context.Context, connectionID, ack, compliment, ask string) (*domain.Message, error)

	// ComposeCustomMessage 保存自定义草稿
	ComposeCustomMessage(ctx context.Context, connectionID, content string) (*domain.Message, error)

	// MarkMessageAsSent marks a draft sent, moves the connection to contacted,
	// and records a message_sent note. Already-sent messages are returned as is.
	// MarkMessageAsSent 标记消息已发送
	MarkMessageAsSent(ctx context.Context, id string) (*domain.Message, error)

	// GetConnectionMessages 获取联系人的消息，按创建时间倒序
	GetConnectionMessages(ctx context.Context, connectionID string) ([]*domain.Message, error)

	// GetMessage 获取消息
	GetMessage(ctx context.Context, id string) (*domain.Message, error)
}

type messageService struct {
	repo        domain.MessageRepository
	connections ConnectionService
	tracker     ActionTracker
	config      *ServiceConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo domain.MessageRepository, connections ConnectionService, tracker ActionTracker, cfg *ServiceConfig, lg *zap.Logger) MessageService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &messageService{repo: repo, connections: connections, tracker: tracker, config: cfg, logger: lg, now: time.Now}
}

// BuildAcaContent joins the three parts and the sign-off with blank lines
func BuildAcaContent(ack, compliment, ask, signature string) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\nBest\n%s", ack, compliment, ask, signature)
}

// SentNoteContent is the note text recorded when a message is sent
func SentNoteContent(content string) string {
	return "Sent message: " + truncateRunes(content, sentNotePrefixLen) + "..."
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func (s *messageService) SaveMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if msg == nil || msg.ConnectionID == "" {
		return nil, code.ErrorInvalidParams.WithDetails("connectionId")
	}
	m := *msg
	m.ID = uuid.New().String()
	m.CreatedAt = s.now()
	if m.Status == "" {
		m.Status = domain.MessageStatusDraft
	}
	saved, err := s.repo.Create(ctx, &m)
	if err != nil {
		return nil, code.ErrorMessageSaveFailed.WithDetails(err.Error())
	}
	return saved, nil
}

func (s *messageService) CreateAcaMessage(ctx context.Context, connectionID, ack, compliment, ask string) (*domain.Message, error) {
	if _, err := s.connections.GetConnection(ctx, connectionID); err != nil {
		return nil, err
	}
	return s.SaveMessage(ctx, &domain.Message{
		ConnectionID: connectionID,
		Content:      BuildAcaContent(ack, compliment, ask, s.config.signature()),
		Status:       domain.MessageStatusDraft,
		Template:     domain.TemplateACA,
		Metadata:     &domain.MessageMetadata{Acknowledgment: ack, Compliment: compliment, Ask: ask},
	})
}

func (s *messageService) ComposeCustomMessage(ctx context.Context, connectionID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, code.ErrorInvalidParams.WithDetails("content")
	}
	if _, err := s.connections.GetConnection(ctx, connectionID); err != nil {
		return nil, err
	}
	return s.SaveMessage(ctx, &domain.Message{
		ConnectionID: connectionID,
		Content:      content,
		Status:       domain.MessageStatusDraft,
		Template:     domain.TemplateCustom,
	})
}

func (s *messageService) MarkMessageAsSent(ctx context.Context, id string) (*domain.Message, error) {
	msg, err := s.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.IsSent() {
		return msg, nil
	}

	if err := s.repo.MarkSent(ctx, id, s.now()); err != nil {
		return nil, mapRepoErr(err, code.ErrorMessageNotFound)
	}

	// the message is already sent, so cascade failures are only logged
	if _, err := s.connections.UpdateConnectionStatus(ctx, msg.ConnectionID, domain.StatusContacted); err != nil {
		s.logger.Warn("MessageService.MarkMessageAsSent status cascade err",
			zap.String(logger.FieldMessageID, id), zap.String(logger.FieldConnectionID, msg.ConnectionID), zap.Error(err))
	}
	s.tracker.Track(ctx, domain.ActionMessageSent)

	if _, err := s.connections.AddConnectionNote(ctx, msg.ConnectionID, SentNoteContent(msg.Content), domain.NoteTypeMessageSent); err != nil {
		s.logger.Warn("MessageService.MarkMessageAsSent note err",
			zap.String(logger.FieldMessageID, id), zap.Error(err))
	}

	return s.GetMessage(ctx, id)
}

func (s *messageService) GetConnectionMessages(ctx context.Context, connectionID string) ([]*domain.Message, error) {
	list, err := s.repo.ListByConnection(ctx, connectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return list, nil
}

func (s *messageService) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, code.ErrorMessageNotFound)
	}
	return msg, nil
}
