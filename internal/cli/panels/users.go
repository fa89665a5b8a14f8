package panels

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"PolicyDesk/internal/cli/model"
)

// UsersClient — часть api.Client для пользователей.
type UsersClient interface {
	Users(ctx context.Context) ([]model.User, error)
	Departments(ctx context.Context) ([]model.Department, error)
	Grades(ctx context.Context) ([]model.Grade, error)
	CreateUser(ctx context.Context, u model.NewUser) (int64, error)
	UpdateUser(ctx context.Context, id int64, u model.UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error
}

// Users — экран пользователей. В отличие от остальных экранов создание
// не перезагружает список, а добавляет запись локально с ID от сервера.
type Users struct {
	base
	client      UsersClient
	items       []model.User
	departments []model.Department
	grades      []model.Grade
	recent      []Activity
}

func NewUsers(client UsersClient, o Options) *Users {
	p := &Users{client: client}
	p.init(o)
	return p
}

// Load загружает пользователей, подразделения и грейды параллельно.
func (p *Users) Load(ctx context.Context) error {
	var (
		users  []model.User
		deps   []model.Department
		grades []model.Grade
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { users, err = p.client.Users(gCtx); return })
	g.Go(func() (err error) { deps, err = p.client.Departments(gCtx); return })
	g.Go(func() (err error) { grades, err = p.client.Grades(gCtx); return })
	if err := g.Wait(); err != nil {
		return err
	}
	p.apply(func() {
		p.items, p.departments, p.grades = users, deps, grades
	})
	return nil
}

// Items возвращает копию списка пользователей.
func (p *Users) Items() []model.User {
	var out []model.User
	p.read(func() { out = append(out, p.items...) })
	return out
}

// Recent — последние созданные пользователи, не более пяти, новые первыми.
func (p *Users) Recent() []Activity {
	var out []Activity
	p.read(func() { out = append(out, p.recent...) })
	return out
}

// Create создаёт пользователя. Все поля обязательны.
func (p *Users) Create(ctx context.Context, u model.NewUser) (int64, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" || u.Password == "" || u.DepartmentID == 0 || u.GradeID == 0 || u.Role == "" {
		return 0, invalid("user", "Please fill in all fields")
	}
	var id int64
	err := p.run(ctx, "users.create", func(ctx context.Context) error {
		var err error
		id, err = p.client.CreateUser(ctx, u)
		return err
	}, func() {
		p.apply(func() {
			p.items = append(p.items, model.User{
				ID:             id,
				Username:       u.Username,
				Role:           u.Role,
				DepartmentID:   u.DepartmentID,
				GradeID:        u.GradeID,
				DepartmentName: p.departmentName(u.DepartmentID),
				GradeName:      p.gradeName(u.GradeID),
			})
			p.recent = pushRecent(p.recent, Activity{ID: strconv.FormatInt(id, 10), Label: u.Username + " (" + u.Role + ")"})
		})
	})
	return id, err
}

// вызывается под p.mu
func (p *Users) departmentName(id int64) string {
	for _, d := range p.departments {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}

// вызывается под p.mu
func (p *Users) gradeName(id int64) string {
	for _, g := range p.grades {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}

// Update обновляет пользователя и перезагружает список.
func (p *Users) Update(ctx context.Context, id int64, u model.UserUpdate) error {
	if strings.TrimSpace(u.Username) == "" {
		return invalid("username", "Username is required")
	}
	err := p.run(ctx, "users.update", func(ctx context.Context) error {
		return p.client.UpdateUser(ctx, id, u)
	}, nil)
	if err != nil {
		return err
	}
	return p.Load(ctx)
}

// Delete удаляет пользователя после подтверждения; локально запись убирается
// только после ответа сервера.
func (p *Users) Delete(ctx context.Context, id int64) error {
	if err := p.confirmed("Are you sure you want to delete this user?"); err != nil {
		return err
	}
	key := strconv.FormatInt(id, 10)
	return p.run(ctx, "users.delete", func(ctx context.Context) error {
		return p.client.DeleteUser(ctx, id)
	}, func() {
		p.apply(func() {
			kept := p.items[:0:0]
			for _, u := range p.items {
				if u.ID != id {
					kept = append(kept, u)
				}
			}
			p.items = kept
			recent := p.recent[:0:0]
			for _, a := range p.recent {
				if a.ID != key {
					recent = append(recent, a)
				}
			}
			p.recent = recent
		})
	})
}
