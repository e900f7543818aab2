// Package writequeue serializes writes that share a key.
// Package writequeue 串行化同一键下的写操作
// SQLite allows a single writer; routing multi-statement writes through one FIFO per key
// keeps them from failing with "database is locked".
// 用于串行化 SQLite 写操作，避免 "database is locked"
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 当写队列已满时返回
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 当写队列管理器已关闭时返回
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 当写操作超时时返回
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	// QueueCapacity 每个键的队列容量
	QueueCapacity int
	// WriteTimeout 写操作超时时间
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type keyQueue struct {
	key string
	ch  chan writeOp
}

// Manager owns one FIFO worker per key
// Manager 为每个键维护一个 FIFO 写队列
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	queues map[string]*keyQueue
	closed bool
	wg     sync.WaitGroup
}

func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		config: c,
		logger: logger,
		queues: make(map[string]*keyQueue),
	}
}

// Execute runs fn after every earlier write queued under key has finished
// Execute 在同一键下之前的写操作完成后执行 fn
func (m *Manager) Execute(ctx context.Context, key string, fn func() error) error {
	q, err := m.queue(key)
	if err != nil {
		return err
	}

	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case q.ch <- op:
	default:
		return ErrWriteQueueFull
	}

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	}
}

func (m *Manager) queue(key string) (*keyQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrWriteQueueClosed
	}
	if q, ok := m.queues[key]; ok {
		return q, nil
	}
	q := &keyQueue{key: key, ch: make(chan writeOp, m.config.QueueCapacity)}
	m.queues[key] = q
	m.wg.Add(1)
	go m.worker(q)
	m.logger.Debug("write queue created", zap.String("key", key))
	return q, nil
}

func (m *Manager) worker(q *keyQueue) {
	defer m.wg.Done()
	for op := range q.ch {
		select {
		case <-op.ctx.Done():
			op.result <- op.ctx.Err()
			continue
		default:
		}
		op.result <- m.safeRun(q.key, op.fn)
	}
}

func (m *Manager) safeRun(key string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("write queue op panic", zap.String("key", key), zap.Any("panic", r), zap.Stack("stack"))
			err = errors.New("write operation panicked")
		}
	}()
	return fn()
}

// Shutdown drains every queue and stops the workers
// Shutdown 排空全部队列并停止 worker
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, q := range m.queues {
		close(q.ch)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout")
		return ctx.Err()
	}
}

// QueueCount returns how many keys currently own a queue
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}
