package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"PolicyDesk/internal/cli/session"
)

func TestResolve(t *testing.T) {
	admin := &session.Identity{ID: 1, Username: "root", Role: "admin"}
	staff := &session.Identity{ID: 2, Username: "anna", Role: "staff"}
	odd := &session.Identity{ID: 3, Username: "x", Role: "guest"}

	tests := []struct {
		name string
		path string
		id   *session.Identity
		want Decision
	}{
		{"root anonymous", "/", nil, Decision{ViewLogin, "/login", true}},
		{"root admin", "/", admin, Decision{ViewAdmin, "/admin", true}},
		{"root staff", "/", staff, Decision{ViewStaff, "/staff", true}},
		{"login anonymous", "/login", nil, Decision{ViewLogin, "/login", false}},
		{"login admin redirects home", "/login", admin, Decision{ViewAdmin, "/admin", true}},
		{"login staff redirects home", "/login", staff, Decision{ViewStaff, "/staff", true}},
		{"admin as admin", "/admin", admin, Decision{ViewAdmin, "/admin", false}},
		{"admin subpath", "/admin/users", admin, Decision{ViewAdmin, "/admin/users", false}},
		{"admin as staff", "/admin/users", staff, Decision{ViewLogin, "/login", true}},
		{"admin anonymous", "/admin", nil, Decision{ViewLogin, "/login", true}},
		{"staff as staff", "/staff", staff, Decision{ViewStaff, "/staff", false}},
		{"staff as admin", "/staff", admin, Decision{ViewLogin, "/login", true}},
		{"unknown anonymous", "/whatever", nil, Decision{ViewLogin, "/login", true}},
		{"unknown admin", "/whatever", admin, Decision{ViewAdmin, "/admin", true}},
		{"prefix is not a subpath", "/administrator", admin, Decision{ViewAdmin, "/admin", true}},
		{"unknown role", "/", odd, Decision{ViewLogin, "/login", true}},
		{"unknown role login", "/login", odd, Decision{ViewLogin, "/login", false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path, tt.id))
		})
	}
}

func TestHome(t *testing.T) {
	assert.Equal(t, "/admin", Home("admin"))
	assert.Equal(t, "/staff", Home("staff"))
	assert.Equal(t, "/login", Home(""))
}
