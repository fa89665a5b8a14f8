// Package status держит флаги готовности бэкенда.
package status

import (
	"context"
	"fmt"
	"sync"

	"PolicyDesk/internal/cli/model"
)

// Flags — флаги /api/status.
type Flags struct {
	DBReady     bool
	ModelLoaded bool
	Ready       bool
}

// Fetcher — часть api.Client для чтения статуса.
type Fetcher interface {
	Status(ctx context.Context) (model.Status, error)
}

// Monitor хранит последние полученные флаги; безопасен для конкурентного использования.
type Monitor struct {
	client Fetcher

	mu       sync.RWMutex
	flags    Flags
	duration string
	checked  bool
}

// NewMonitor создаёт монитор; до первого Refresh все флаги false.
func NewMonitor(client Fetcher) *Monitor {
	return &Monitor{client: client}
}

// Refresh запрашивает /api/status и полностью заменяет флаги.
// При ошибке предыдущие флаги сохраняются.
func (m *Monitor) Refresh(ctx context.Context) error {
	st, err := m.client.Status(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.flags = Flags{DBReady: st.DBReady, ModelLoaded: st.ModelLoaded, Ready: st.Ready}
	if st.DurationS > 0 {
		m.duration = FormatDuration(st.DurationS)
	}
	m.checked = true
	m.mu.Unlock()
	return nil
}

// Flags возвращает снимок флагов.
func (m *Monitor) Flags() Flags {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags
}

// Ready — общая готовность.
func (m *Monitor) Ready() bool { return m.Flags().Ready }

// Checked сообщает, был ли хоть один успешный Refresh.
func (m *Monitor) Checked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checked
}

// Duration — отформатированная длительность последнего ответа со статусом.
func (m *Monitor) Duration() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.duration
}

// Line рендерит строку статуса для вывода в CLI.
func (m *Monitor) Line() string {
	f := m.Flags()
	return fmt.Sprintf("DB: %s | Model: %s | Ready: %s", mark(f.DBReady, "ready", "not ready"),
		mark(f.ModelLoaded, "loaded", "not loaded"), mark(f.Ready, "yes", "no"))
}

func mark(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// FormatDuration: от 60 секунд — "X.XX min", иначе "X.XX s".
func FormatDuration(seconds float64) string {
	if seconds >= 60 {
		return fmt.Sprintf("%.2f min", seconds/60)
	}
	return fmt.Sprintf("%.2f s", seconds)
}
