// Package session хранит личность текущего пользователя клиента.
// Session — явный объект контекста: его создают в main/dispatcher и передают вниз,
// глобального состояния нет.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/repo"
)

// Ключи хранилища.
const (
	KeyUser  = "user"
	KeyTheme = "theme"
)

// Темы оформления.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Identity — аутентифицированный пользователь.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin сообщает, что роль — admin.
func (i Identity) IsAdmin() bool { return i.Role == model.RoleAdmin }

// FromUser строит Identity из записи пользователя, возвращённой /api/login.
func FromUser(u model.User) Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Invalidator — серверная инвалидация сессии (POST /api/logout).
type Invalidator interface {
	Logout(ctx context.Context) error
}

// Session — текущая личность и её persisted-копия в KVStore.
type Session struct {
	store  repo.KVStore
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	current *Identity
}

// Open читает ключ user один раз. Некорректный JSON трактуется как отсутствие сессии.
// Роль берётся как есть, без проверки на сервере.
func Open(store repo.KVStore, logger *zap.SugaredLogger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Session{store: store, logger: logger}
	raw, ok, err := store.Get(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || raw == "" {
		return s, nil
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		logger.Warnw("stored session is malformed, ignoring", "error", err)
		return s, nil
	}
	if id.Username == "" {
		logger.Warnw("stored session has no username, ignoring")
		return s, nil
	}
	s.current = &id
	return s, nil
}

// Current возвращает текущую личность.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Login сохраняет личность в хранилище и делает её текущей.
// При ошибке записи текущая личность не меняется.
func (s *Session) Login(id Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.Set(KeyUser, string(b)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
	return nil
}

// Logout очищает личность в памяти и в хранилище, затем уведомляет сервер.
// Ошибка инвалидации только логируется: локальный выход уже состоялся.
func (s *Session) Logout(ctx context.Context, inv Invalidator) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Remove(KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if inv != nil {
		if err := inv.Logout(ctx); err != nil {
			s.logger.Debugw("logout invalidation failed", "error", err)
		}
	}
	return nil
}

// Theme возвращает сохранённую тему (light по умолчанию).
func (s *Session) Theme() string {
	v, ok, err := s.store.Get(KeyTheme)
	if err != nil {
		s.logger.Debugw("read theme", "error", err)
		return ThemeLight
	}
	if !ok || (v != ThemeLight && v != ThemeDark) {
		return ThemeLight
	}
	return v
}

// SetTheme сохраняет тему.
func (s *Session) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q (light|dark)", theme)
	}
	return s.store.Set(KeyTheme, theme)
}

// ToggleTheme переключает тему и возвращает новую.
func (s *Session) ToggleTheme() (string, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, s.SetTheme(next)
}
