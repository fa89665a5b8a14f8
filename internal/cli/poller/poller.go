// Package poller запускает периодический опрос на отдельной горутине.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Poller вызывает Tick сразу после Start и затем каждые Interval.
// Ошибка тика логируется, следующий тик идёт по расписанию: без backoff и без предела попыток.
// После каждого тика проверяется StopWhen; true останавливает опрос.
type Poller struct {
	Interval time.Duration
	Tick     func(ctx context.Context) error
	StopWhen func() bool
	Logger   *zap.SugaredLogger
	Name     string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Int64
}

// Policy задаёт условие остановки.
type Policy func() bool

// Forever — опрос не останавливается сам.
func Forever() Policy { return nil }

// UntilReady останавливает опрос, как только ready() вернёт true.
func UntilReady(ready func() bool) Policy { return ready }

// New собирает Poller с политикой остановки.
func New(name string, interval time.Duration, tick func(ctx context.Context) error, policy Policy, logger *zap.SugaredLogger) *Poller {
	return &Poller{Name: name, Interval: interval, Tick: tick, StopWhen: policy, Logger: logger}
}

// Start запускает опрос. Повторный вызов на работающем поллере ничего не делает.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		select {
		case <-p.done:
		default:
			return
		}
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop().Sugar()
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	if p.once(ctx) {
		return
	}
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.once(ctx) {
				return
			}
		}
	}
}

// once выполняет один тик и сообщает, нужно ли остановиться.
func (p *Poller) once(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	if err := p.Tick(ctx); err != nil && ctx.Err() == nil {
		p.Logger.Debugw("poll tick failed", "poller", p.Name, "error", err)
	}
	p.ticks.Add(1)
	return p.StopWhen != nil && p.StopWhen()
}

// Stop отменяет опрос и ждёт завершения горутины.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done закрывается, когда опрос завершён (остановлен или достиг условия).
// До Start возвращает nil.
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Ticks — число выполненных тиков.
func (p *Poller) Ticks() int64 { return p.ticks.Load() }
