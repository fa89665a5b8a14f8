package shell

import (
	"context"

	"PolicyDesk/internal/cli/chat"
	"PolicyDesk/internal/cli/lifetime"
	"PolicyDesk/internal/cli/poller"
	"PolicyDesk/internal/cli/status"
)

// ChatView — экран чата с опросом статуса и истории.
type ChatView struct {
	Chat    *chat.Controller
	Monitor *status.Monitor
	Theme   string

	scope  *lifetime.Scope
	poller *poller.Poller
	cfg    Config
}

func newChatView(ctx context.Context, cfg Config, scope chat.Scope, name string, policy func(m *status.Monitor) poller.Policy) *ChatView {
	cfg.defaults()
	lt := lifetime.New(ctx)
	monitor := status.NewMonitor(cfg.API)
	ctl := chat.New(chat.Config{
		Client:   cfg.API,
		User:     cfg.User,
		Scope:    scope,
		Ready:    monitor.Ready,
		Logger:   cfg.Logger,
		Lifetime: lt,
	})
	v := &ChatView{Chat: ctl, Monitor: monitor, Theme: cfg.theme(), scope: lt, cfg: cfg}
	v.poller = poller.New(name, cfg.ChatInterval, refreshAll(monitor, ctl), policy(monitor), cfg.Logger)
	return v
}

// NewAdminChat — чат администратора: адресуется модели, опрос останавливается,
// как только система готова.
func NewAdminChat(ctx context.Context, cfg Config) *ChatView {
	return newChatView(ctx, cfg, chat.ScopeModel, "admin-chat", func(m *status.Monitor) poller.Policy {
		return poller.UntilReady(m.Ready)
	})
}

// NewStaff — чат сотрудника: адресуется коллекции, опрос не останавливается.
func NewStaff(ctx context.Context, cfg Config) *ChatView {
	return newChatView(ctx, cfg, chat.ScopeCollection, "staff-chat", func(*status.Monitor) poller.Policy {
		return poller.Forever()
	})
}

// Start загружает список моделей или коллекций и запускает опрос.
// Ошибка загрузки списка логируется: чат остаётся доступен с пустым выбором.
func (v *ChatView) Start() {
	ctx := v.scope.Context()
	if err := v.Chat.LoadTargets(ctx); err != nil {
		v.cfg.Logger.Debugw("chat targets fetch failed", "error", err)
	}
	v.poller.Start(ctx)
}

// Poller возвращает поллер экрана.
func (v *ChatView) Poller() *poller.Poller { return v.poller }

// Close останавливает опрос и отбрасывает все последующие обновления.
func (v *ChatView) Close() {
	v.scope.Close()
	v.poller.Stop()
	v.Chat.Wait()
}
