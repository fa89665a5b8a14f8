package shell

import (
	"context"
	"fmt"
	"sync"

	"PolicyDesk/internal/cli/lifetime"
	"PolicyDesk/internal/cli/panels"
	"PolicyDesk/internal/cli/poller"
	"PolicyDesk/internal/cli/status"
)

// Вкладки оболочки администратора.
const (
	TabDashboard    = "dashboard"
	TabDepartments  = "departments"
	TabGrades       = "grades"
	TabUsers        = "users"
	TabDocuments    = "documents"
	TabChatbot      = "chatbot"
	TabModels       = "models"
	TabAssignments  = "assignments"
	TabUsersHistory = "users-history"
)

// Tabs — порядок вкладок в меню.
var Tabs = []string{
	TabDashboard, TabDepartments, TabGrades, TabUsers, TabDocuments,
	TabChatbot, TabModels, TabAssignments, TabUsersHistory,
}

// Admin — оболочка администратора. Переключение вкладки закрывает предыдущую:
// её незавершённые обновления отбрасываются.
type Admin struct {
	cfg     Config
	ctx     context.Context
	monitor *status.Monitor
	poller  *poller.Poller

	mu     sync.Mutex
	active string
	scope  *lifetime.Scope
	view   any
}

// NewAdmin создаёт оболочку; статус опрашивается каждые ShellInterval без остановки.
func NewAdmin(ctx context.Context, cfg Config) *Admin {
	cfg.defaults()
	a := &Admin{cfg: cfg, ctx: ctx, monitor: status.NewMonitor(cfg.API), active: TabDashboard}
	a.poller = poller.New("admin-shell", cfg.ShellInterval, a.monitor.Refresh, poller.Forever(), cfg.Logger)
	return a
}

// Start запускает опрос статуса.
func (a *Admin) Start() { a.poller.Start(a.ctx) }

// Stop останавливает опрос и закрывает активную вкладку.
func (a *Admin) Stop() {
	a.poller.Stop()
	a.mu.Lock()
	a.closeViewLocked()
	a.mu.Unlock()
}

// Monitor — флаги готовности, видимые во всех вкладках.
func (a *Admin) Monitor() *status.Monitor { return a.monitor }

// Poller возвращает поллер статуса оболочки.
func (a *Admin) Poller() *poller.Poller { return a.poller }

// Theme возвращает текущую тему оболочки.
func (a *Admin) Theme() string { return a.cfg.theme() }

// ToggleTheme переключает и сохраняет тему.
func (a *Admin) ToggleTheme() (string, error) {
	if a.cfg.Session == nil {
		return a.Theme(), nil
	}
	return a.cfg.Session.ToggleTheme()
}

// Active — имя активной вкладки.
func (a *Admin) Active() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func validTab(tab string) bool {
	for _, t := range Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

// Open делает вкладку активной и возвращает её экран:
// *panels.Dashboard, *panels.Departments, *panels.Grades, *panels.Users, *panels.Collections,
// *ChatView, *panels.Models, *panels.Assignments или *panels.UserHistory.
func (a *Admin) Open(tab string) (any, error) {
	if !validTab(tab) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeViewLocked()

	a.scope = lifetime.New(a.ctx)
	o := panels.Options{Lifetime: a.scope, Confirmer: a.cfg.Confirmer, Logger: a.cfg.Logger}
	api, uid := a.cfg.API, a.cfg.User.ID
	switch tab {
	case TabDashboard:
		a.view = panels.NewDashboard(api, uid, o)
	case TabDepartments:
		a.view = panels.NewDepartments(api, o)
	case TabGrades:
		a.view = panels.NewGrades(api, o)
	case TabUsers:
		a.view = panels.NewUsers(api, o)
	case TabDocuments:
		a.view = panels.NewCollections(api, uid, o)
	case TabChatbot:
		a.view = NewAdminChat(a.scope.Context(), a.cfg)
	case TabModels:
		a.view = panels.NewModels(api, uid, o)
	case TabAssignments:
		a.view = panels.NewAssignments(api, uid, o)
	case TabUsersHistory:
		a.view = panels.NewUserHistory(api, o)
	}
	a.active = tab
	return a.view, nil
}

func (a *Admin) closeViewLocked() {
	if cv, ok := a.view.(*ChatView); ok {
		cv.Close()
	}
	if a.scope != nil {
		a.scope.Close()
	}
	a.view, a.scope = nil, nil
}

// Typed helpers.

func (a *Admin) Dashboard() *panels.Dashboard {
	v, _ := a.Open(TabDashboard)
	return v.(*panels.Dashboard)
}

func (a *Admin) Departments() *panels.Departments {
	v, _ := a.Open(TabDepartments)
	return v.(*panels.Departments)
}

func (a *Admin) Grades() *panels.Grades {
	v, _ := a.Open(TabGrades)
	return v.(*panels.Grades)
}

func (a *Admin) Users() *panels.Users {
	v, _ := a.Open(TabUsers)
	return v.(*panels.Users)
}

func (a *Admin) Documents() *panels.Collections {
	v, _ := a.Open(TabDocuments)
	return v.(*panels.Collections)
}

func (a *Admin) Chatbot() *ChatView {
	v, _ := a.Open(TabChatbot)
	return v.(*ChatView)
}

func (a *Admin) Models() *panels.Models {
	v, _ := a.Open(TabModels)
	return v.(*panels.Models)
}

func (a *Admin) Assignments() *panels.Assignments {
	v, _ := a.Open(TabAssignments)
	return v.(*panels.Assignments)
}

func (a *Admin) UsersHistory() *panels.UserHistory {
	v, _ := a.Open(TabUsersHistory)
	return v.(*panels.UserHistory)
}
