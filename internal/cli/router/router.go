// Package router решает, какой экран доступен по пути для текущей личности.
package router

import (
	"strings"

	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/session"
)

// View — экран верхнего уровня.
type View string

const (
	ViewLogin View = "login"
	ViewAdmin View = "admin"
	ViewStaff View = "staff"
)

// Корневые пути экранов.
const (
	PathRoot  = "/"
	PathLogin = "/login"
	PathAdmin = "/admin"
	PathStaff = "/staff"
)

// Decision — итог разрешения пути.
// Path — фактический путь; Redirected=true, если он отличается от запрошенного.
type Decision struct {
	View       View
	Path       string
	Redirected bool
}

// Home возвращает домашний путь роли; для неизвестной роли — /login.
func Home(role string) string {
	switch role {
	case model.RoleAdmin:
		return PathAdmin
	case model.RoleStaff:
		return PathStaff
	default:
		return PathLogin
	}
}

func viewOf(path string) View {
	switch {
	case strings.HasPrefix(path, PathAdmin):
		return ViewAdmin
	case strings.HasPrefix(path, PathStaff):
		return ViewStaff
	default:
		return ViewLogin
	}
}

// Resolve применяет правила гарда к path. id == nil означает анонимного пользователя.
func Resolve(path string, id *session.Identity) Decision {
	role := ""
	if id != nil {
		role = id.Role
	}
	target := resolvePath(normalize(path), role)
	return Decision{View: viewOf(target), Path: target, Redirected: target != path}
}

func resolvePath(path, role string) string {
	switch {
	case path == PathLogin:
		if role == "" {
			return PathLogin
		}
		return Home(role)
	case under(path, PathAdmin):
		if role == model.RoleAdmin {
			return path
		}
		return PathLogin
	case under(path, PathStaff):
		if role == model.RoleStaff {
			return path
		}
		return PathLogin
	default:
		// корень и неизвестные пути
		return Home(role)
	}
}

func under(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}

func normalize(path string) string {
	if path == "" {
		return PathRoot
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
