package panels

import (
	"context"

	"golang.org/x/sync/errgroup"

	"PolicyDesk/internal/cli/model"
)

// UserHistoryClient — часть api.Client для просмотра истории сотрудников.
type UserHistoryClient interface {
	Departments(ctx context.Context) ([]model.Department, error)
	Users(ctx context.Context) ([]model.User, error)
	UserHistory(ctx context.Context, userID int64) ([]model.HistoryEntry, error)
}

// UserHistory — экран администратора: выбор подразделения, затем сотрудника, затем его история.
type UserHistory struct {
	base
	client      UserHistoryClient
	departments []model.Department
	users       []model.User
	history     []model.HistoryEntry
}

func NewUserHistory(client UserHistoryClient, o Options) *UserHistory {
	p := &UserHistory{client: client}
	p.init(o)
	return p
}

// Load загружает подразделения и пользователей. Ошибка одного из запросов
// оставляет соответствующий список пустым.
func (p *UserHistory) Load(ctx context.Context) error {
	var (
		deps  []model.Department
		users []model.User
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if deps, err = p.client.Departments(ctx); err != nil {
			p.logger.Debugw("user history: departments", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if users, err = p.client.Users(ctx); err != nil {
			p.logger.Debugw("user history: users", "error", err)
		}
		return nil
	})
	_ = g.Wait()
	p.apply(func() { p.departments, p.users = deps, users })
	return nil
}

// Departments возвращает загруженные подразделения.
func (p *UserHistory) Departments() []model.Department {
	var out []model.Department
	p.read(func() { out = append(out, p.departments...) })
	return out
}

// UsersIn фильтрует локальный список пользователей по подразделению.
func (p *UserHistory) UsersIn(departmentID int64) []model.User {
	var out []model.User
	p.read(func() {
		for _, u := range p.users {
			if u.DepartmentID == departmentID {
				out = append(out, u)
			}
		}
	})
	return out
}

// Select загружает историю пользователя. Ошибка даёт пустую историю.
func (p *UserHistory) Select(ctx context.Context, userID int64) ([]model.HistoryEntry, error) {
	if userID == 0 {
		p.apply(func() { p.history = nil })
		return nil, nil
	}
	list, err := p.client.UserHistory(ctx, userID)
	if err != nil {
		p.apply(func() { p.history = nil })
		return nil, err
	}
	p.apply(func() { p.history = list })
	return list, nil
}

// History возвращает историю выбранного пользователя.
func (p *UserHistory) History() []model.HistoryEntry {
	var out []model.HistoryEntry
	p.read(func() { out = append(out, p.history...) })
	return out
}
