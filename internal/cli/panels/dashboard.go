package panels

import (
	"context"

	"golang.org/x/sync/errgroup"

	"PolicyDesk/internal/cli/model"
)

// DashboardClient — часть api.Client для сводки.
type DashboardClient interface {
	Departments(ctx context.Context) ([]model.Department, error)
	UsersByDepartment(ctx context.Context, departmentID int64) ([]model.User, error)
	Collections(ctx context.Context, userID int64) ([]model.Collection, error)
	Models(ctx context.Context, userID int64) ([]model.ModelConfig, error)
}

// DepartmentSummary — подразделение и его сотрудники.
type DepartmentSummary struct {
	Department model.Department
	Users      []model.User
}

// Summary — сводка экрана dashboard.
type Summary struct {
	Departments []DepartmentSummary
	Collections []model.Collection
	Models      []model.ModelConfig
	// Errors — уведомления о неудавшихся частях; остальные данные показываются.
	Errors []string
}

// TotalUsers — число сотрудников по всем подразделениям.
func (s Summary) TotalUsers() int {
	n := 0
	for _, d := range s.Departments {
		n += len(d.Users)
	}
	return n
}

// Dashboard — сводный экран.
type Dashboard struct {
	base
	client DashboardClient
	userID int64
	last   Summary
}

func NewDashboard(client DashboardClient, userID int64, o Options) *Dashboard {
	p := &Dashboard{client: client, userID: userID}
	p.init(o)
	return p
}

const dashboardFanout = 4

// Load собирает сводку. Ошибка одной части не прерывает остальные,
// а попадает в Summary.Errors.
func (p *Dashboard) Load(ctx context.Context) Summary {
	var s Summary
	deps, err := p.client.Departments(ctx)
	if err != nil {
		s.Errors = append(s.Errors, Message(err, "Failed to fetch departments"))
	}

	s.Departments = make([]DepartmentSummary, len(deps))
	depErrs := make([]string, len(deps))
	var g errgroup.Group
	g.SetLimit(dashboardFanout)
	for i, d := range deps {
		s.Departments[i].Department = d
		g.Go(func() error {
			users, err := p.client.UsersByDepartment(ctx, d.ID)
			if err != nil {
				depErrs[i] = Message(err, "Failed to fetch users for "+d.Name)
				return nil
			}
			s.Departments[i].Users = users
			return nil
		})
	}
	var colErr error
	g.Go(func() error {
		s.Collections, colErr = p.client.Collections(ctx, p.userID)
		return nil
	})
	_ = g.Wait()
	for _, e := range depErrs {
		if e != "" {
			s.Errors = append(s.Errors, e)
		}
	}
	if colErr != nil {
		s.Errors = append(s.Errors, Message(colErr, "Failed to fetch collections"))
	}

	models, err := p.client.Models(ctx, 0)
	if err != nil {
		s.Errors = append(s.Errors, Message(err, "Failed to fetch models"))
	}
	s.Models = models

	p.apply(func() { p.last = s })
	return s
}

// Last возвращает последнюю загруженную сводку.
func (p *Dashboard) Last() Summary {
	var s Summary
	p.read(func() { s = p.last })
	return s
}
