package service

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/importer"
	"github.com/zachlandes/2ml-crm/pkg/code"
	"github.com/zachlandes/2ml-crm/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ConnectionService 联系人服务接口
type ConnectionService interface {
	// LoadConnections imports the configured CSV into an empty store, otherwise
	// returns stored rows with duplicates merged at read time.
	// LoadConnections 空库时导入 CSV，否则读取并在读取时合并重复行
	LoadConnections(ctx context.Context) ([]*domain.Connection, error)

	// ListConnections 同 LoadConnections
	ListConnections(ctx context.Context) ([]*domain.Connection, error)

	// ImportConnections parses r, merges duplicates and persists the result.
	// Without force it refuses to touch a non-empty store and returns the stored rows.
	// ImportConnections 解析并导入，非 force 模式下不覆盖已有数据
	ImportConnections(ctx context.Context, r io.Reader, force bool) ([]*domain.Connection, error)

	// GetConnection 获取联系人
	GetConnection(ctx context.Context, id string) (*domain.Connection, error)

	// UpdateConnectionNotes 更新备注并记录一条 note_updated 笔记
	UpdateConnectionNotes(ctx context.Context, id, notes string) (*domain.Connection, error)

	// UpdateConnectionStatus sets the status, then completes open reminders.
	// The two steps are separate writes and fail with distinct codes.
	// UpdateConnectionStatus 更新状态并完成未完成提醒
	UpdateConnectionStatus(ctx context.Context, id string, status domain.ConnectionStatus) (*domain.StatusUpdateResult, error)

	// AddConnectionNote 添加笔记并刷新最后联系时间，返回笔记 ID
	AddConnectionNote(ctx context.Context, connectionID, content string, noteType domain.NoteType) (string, error)

	// GetConnectionNotes 获取联系人的笔记，按创建时间倒序
	GetConnectionNotes(ctx context.Context, connectionID string) ([]*domain.Note, error)

	// DeleteNote 删除用户笔记
	DeleteNote(ctx context.Context, id string) error
}

type connectionService struct {
	repo      domain.ConnectionRepository
	noteRepo  domain.NoteRepository
	reminders ReminderService
	tracker   ActionTracker
	config    *ServiceConfig
	logger    *zap.Logger
	sf        *singleflight.Group
	now       func() time.Time
}

// NewConnectionService 创建 ConnectionService 实例
func NewConnectionService(
	repo domain.ConnectionRepository,
	noteRepo domain.NoteRepository,
	reminders ReminderService,
	tracker ActionTracker,
	cfg *ServiceConfig,
	lg *zap.Logger,
) ConnectionService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &connectionService{
		repo:      repo,
		noteRepo:  noteRepo,
		reminders: reminders,
		tracker:   tracker,
		config:    cfg,
		logger:    lg,
		sf:        &singleflight.Group{},
		now:       time.Now,
	}
}

func (s *connectionService) ListConnections(ctx context.Context) ([]*domain.Connection, error) {
	return s.LoadConnections(ctx)
}

func (s *connectionService) LoadConnections(ctx context.Context) ([]*domain.Connection, error) {
	v, err, _ := s.sf.Do("load_connections", func() (interface{}, error) {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if n == 0 {
			return s.importFromConfiguredCSV(ctx)
		}
		return s.readMerged(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Connection), nil
}

func (s *connectionService) readMerged(ctx context.Context) ([]*domain.Connection, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	flat := make([]domain.Connection, 0, len(rows))
	for _, r := range rows {
		flat = append(flat, *r)
	}
	return toPtrs(importer.MergeDuplicates(flat)), nil
}

func (s *connectionService) importFromConfiguredCSV(ctx context.Context) ([]*domain.Connection, error) {
	path := ""
	if s.config != nil {
		path = s.config.Import.CSVPath
	}
	if path == "" {
		return []*domain.Connection{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("connections csv not found, starting empty", zap.String(logger.FieldPath, path))
			return []*domain.Connection{}, nil
		}
		return nil, code.ErrorImportFailed.WithDetails(err.Error())
	}
	defer f.Close()

	return s.parseAndStore(ctx, f)
}

func (s *connectionService) parseAndStore(ctx context.Context, r io.Reader) ([]*domain.Connection, error) {
	skip := importer.DefaultSkipLines
	if s.config != nil && s.config.Import.SkipLines > 0 {
		skip = s.config.Import.SkipLines
	}
	parsed, err := importer.ParseCSVSkip(r, skip)
	if err != nil {
		return nil, code.ErrorImportFailed.WithDetails(err.Error())
	}

	merged := toPtrs(importer.MergeDuplicates(parsed))
	now := s.now()
	for _, c := range merged {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
	}
	if err := s.repo.Upsert(ctx, merged); err != nil {
		return nil, code.ErrorImportFailed.WithDetails(errors.Wrap(err, "persist connections").Error())
	}
	s.logger.Info("connections imported", zap.Int(logger.FieldCount, len(merged)), zap.Int("rows", len(parsed)))
	return merged, nil
}

func (s *connectionService) ImportConnections(ctx context.Context, r io.Reader, force bool) ([]*domain.Connection, error) {
	if !force {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if n > 0 {
			s.logger.Info("store already has connections, skipping import", zap.Int64(logger.FieldCount, n))
			return s.readMerged(ctx)
		}
	}
	return s.parseAndStore(ctx, r)
}

func (s *connectionService) GetConnection(ctx context.Context, id string) (*domain.Connection, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, code.ErrorConnectionNotFound)
	}
	return c, nil
}

func (s *connectionService) UpdateConnectionNotes(ctx context.Context, id, notes string) (*domain.Connection, error) {
	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		if isNotFound(err) {
			return nil, code.ErrorConnectionNotFound
		}
		return nil, code.ErrorNotesUpdateFailed.WithDetails(err.Error())
	}

	if _, err := s.noteRepo.Create(ctx, &domain.Note{
		ID:           uuid.New().String(),
		ConnectionID: id,
		Content:      notes,
		Type:         domain.NoteTypeNoteUpdated,
		CreatedAt:    s.now(),
	}); err != nil {
		return nil, code.ErrorNotesUpdateFailed.WithDetails(err.Error())
	}
	s.tracker.Track(ctx, domain.ActionNoteAdded)

	return s.GetConnection(ctx, id)
}

func (s *connectionService) UpdateConnectionStatus(ctx context.Context, id string, status domain.ConnectionStatus) (*domain.StatusUpdateResult, error) {
	if !status.Valid() {
		return nil, code.ErrorInvalidStatus.WithDetails(string(status))
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapRepoErr(err, code.ErrorConnectionNotFound)
	}

	if err := s.repo.UpdateStatus(ctx, id, status, s.now()); err != nil {
		if isNotFound(err) {
			return nil, code.ErrorConnectionNotFound
		}
		return nil, code.ErrorStatusUpdateFailed.WithDetails(err.Error())
	}
	s.tracker.Track(ctx, domain.ActionStatusUpdated)

	cleared, err := s.reminders.ClearRemindersOnStatusChange(ctx, id)
	if err != nil {
		s.logger.Error("ConnectionService.UpdateConnectionStatus reminder clear err",
			zap.String(logger.FieldConnectionID, id), zap.String(logger.FieldStatus, string(status)), zap.Error(err))
		return nil, code.ErrorReminderClearFailed.WithDetails(err.Error())
	}

	c, err := s.GetConnection(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.StatusUpdateResult{Connection: c, ClearedReminders: cleared}, nil
}

func (s *connectionService) AddConnectionNote(ctx context.Context, connectionID, content string, noteType domain.NoteType) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", code.ErrorNoteContentEmpty
	}
	if noteType == "" {
		noteType = domain.NoteTypeNote
	}
	if !noteType.Valid() {
		return "", code.ErrorInvalidNoteType.WithDetails(string(noteType))
	}
	if _, err := s.repo.GetByID(ctx, connectionID); err != nil {
		return "", mapRepoErr(err, code.ErrorConnectionNotFound)
	}

	now := s.now()
	note, err := s.noteRepo.Create(ctx, &domain.Note{
		ID:           uuid.New().String(),
		ConnectionID: connectionID,
		Content:      content,
		Type:         noteType,
		CreatedAt:    now,
	})
	if err != nil {
		return "", code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := s.repo.TouchLastContacted(ctx, connectionID, now); err != nil {
		s.logger.Warn("ConnectionService.AddConnectionNote touch err", zap.String(logger.FieldConnectionID, connectionID), zap.Error(err))
	}
	s.tracker.Track(ctx, domain.ActionNoteAdded)
	return note.ID, nil
}

func (s *connectionService) GetConnectionNotes(ctx context.Context, connectionID string) ([]*domain.Note, error) {
	notes, err := s.noteRepo.ListByConnection(ctx, connectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return notes, nil
}

func (s *connectionService) DeleteNote(ctx context.Context, id string) error {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return mapRepoErr(err, code.ErrorNoteNotFound)
	}
	if !note.Type.Deletable() {
		return code.ErrorNoteNotDeletable.WithDetails(string(note.Type))
	}
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}
	return nil
}

func toPtrs(conns []domain.Connection) []*domain.Connection {
	out := make([]*domain.Connection, len(conns))
	for i := range conns {
		out[i] = &conns[i]
	}
	return out
}
