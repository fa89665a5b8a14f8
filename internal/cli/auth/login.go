// Package auth выполняет вход пользователя: валидация, запрос к API и сохранение сессии.
package auth

import (
	"context"
	"errors"
	"strings"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/session"
)

// ErrMissingCredentials — не указан логин или пароль; запрос не отправляется.
var ErrMissingCredentials = errors.New("Please enter username and password")

// Authenticator — часть api.Client, нужная для входа.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*model.User, error)
}

// Login проверяет ввод, вызывает /api/login и при успехе сохраняет личность в сессии.
// Роль по умолчанию — staff. При любой ошибке сессия не меняется.
func Login(ctx context.Context, client Authenticator, sess *session.Session, username, password, role string) (session.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Identity{}, ErrMissingCredentials
	}
	if role == "" {
		role = model.RoleStaff
	}
	u, err := client.Login(ctx, api.LoginRequest{Username: username, Password: password, Role: role})
	if err != nil {
		return session.Identity{}, err
	}
	id := session.FromUser(*u)
	if err := sess.Login(id); err != nil {
		return session.Identity{}, err
	}
	return id, nil
}
