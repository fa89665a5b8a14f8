// Package lifetime привязывает асинхронные обновления к времени жизни экрана.
package lifetime

import (
	"context"
	"sync"
)

// Scope — контекст экрана. Обновления состояния после Close молча отбрасываются.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// New создаёт Scope, дочерний к parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context — контекст для запросов экрана; отменяется при Close.
func (s *Scope) Context() context.Context { return s.ctx }

// Apply выполняет fn под блокировкой scope, только если экран жив.
// Возвращает false, если обновление отброшено.
func (s *Scope) Apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// Alive сообщает, что экран ещё не закрыт.
func (s *Scope) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.ctx.Err() == nil
}

// Close закрывает экран и отменяет его запросы. Идемпотентен.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}
