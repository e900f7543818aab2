// Package safe_close coordinates graceful shutdown of long-running goroutines.
// Package safe_close 协调长期运行协程的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal and waits for every attached worker
type SafeClose struct {
	closeSignal chan struct{}
	once        sync.Once
	wg          sync.WaitGroup

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeSignal: make(chan struct{})}
}

// Attach runs fn in its own goroutine. fn must call done before returning.
// Attach 在独立协程中运行 fn，fn 返回前必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	go fn(func() { doneOnce.Do(s.wg.Done) }, s.closeSignal)
}

// SendCloseSignal closes the signal channel. Only the first call's err is kept.
// SendCloseSignal 发送关闭信号，仅记录首次的错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// CloseSignal exposes the signal channel for code that is not attached
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached worker has called done
// WaitClosed 阻塞直到所有附加的协程完成
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
