// Package shell — экраны верхнего уровня: оболочка администратора и чаты.
// Оболочка владеет темой, активной вкладкой и опросом статуса и передаёт
// тему и пользователя вниз, в экраны.
package shell

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/chat"
	"PolicyDesk/internal/cli/panels"
	"PolicyDesk/internal/cli/session"
	"PolicyDesk/internal/cli/status"
)

// API — всё, что экраны используют из api.Client.
type API interface {
	status.Fetcher
	chat.Client
	panels.DepartmentsClient
	panels.GradesClient
	panels.UsersClient
	panels.CollectionsClient
	panels.ModelsClient
	panels.AssignmentsClient
	panels.UserHistoryClient
	panels.DashboardClient
}

var _ API = (*api.Client)(nil)

// Интервалы опроса по умолчанию.
const (
	DefaultShellInterval = 30 * time.Second
	DefaultChatInterval  = 10 * time.Second
)

// Config — зависимости оболочек.
type Config struct {
	API       API
	Session   *session.Session
	User      session.Identity
	Confirmer panels.Confirmer
	Logger    *zap.SugaredLogger

	ShellInterval time.Duration
	ChatInterval  time.Duration
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	if c.ShellInterval <= 0 {
		c.ShellInterval = DefaultShellInterval
	}
	if c.ChatInterval <= 0 {
		c.ChatInterval = DefaultChatInterval
	}
}

// theme читает тему из сессии; без сессии — светлая.
func (c *Config) theme() string {
	if c.Session == nil {
		return session.ThemeLight
	}
	return c.Session.Theme()
}

// ErrUnknownTab — вкладки с таким именем нет.
var ErrUnknownTab = errors.New("unknown tab")

// refreshAll — тик опроса чата: статус и история независимо друг от друга.
func refreshAll(monitor *status.Monitor, ctl *chat.Controller) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return errors.Join(monitor.Refresh(ctx), ctl.RefreshHistory(ctx))
	}
}
