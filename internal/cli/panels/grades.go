package panels

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"PolicyDesk/internal/cli/model"
)

// ErrGradeInUse — грейд назначен пользователям из локального списка.
// Проверка best-effort: список может быть устаревшим, окончательно решает сервер.
var ErrGradeInUse = errors.New("Cannot delete grade in use by users")

// GradesClient — часть api.Client для грейдов.
type GradesClient interface {
	Grades(ctx context.Context) ([]model.Grade, error)
	CreateGrade(ctx context.Context, g model.Grade) (int64, error)
	UpdateGrade(ctx context.Context, id int64, g model.Grade) error
	DeleteGrade(ctx context.Context, id int64) error
	Users(ctx context.Context) ([]model.User, error)
}

// Grades — экран грейдов.
type Grades struct {
	base
	client GradesClient
	items  []model.Grade
	users  []model.User
}

func NewGrades(client GradesClient, o Options) *Grades {
	p := &Grades{client: client}
	p.init(o)
	return p
}

// Load загружает грейды и пользователей параллельно.
func (p *Grades) Load(ctx context.Context) error {
	var (
		grades []model.Grade
		users  []model.User
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		grades, err = p.client.Grades(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = p.client.Users(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	p.apply(func() {
		p.items = grades
		p.users = users
	})
	return nil
}

func (p *Grades) reloadGrades(ctx context.Context) error {
	list, err := p.client.Grades(ctx)
	if err != nil {
		return err
	}
	p.apply(func() { p.items = list })
	return nil
}

// Items возвращает копию списка.
func (p *Grades) Items() []model.Grade {
	var out []model.Grade
	p.read(func() { out = append(out, p.items...) })
	return out
}

// Create создаёт грейд; имя и уровень обязательны.
func (p *Grades) Create(ctx context.Context, g model.Grade) (int64, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || g.Level == 0 {
		return 0, invalid("grade", "Grade name and level are required")
	}
	var id int64
	err := p.run(ctx, "grades.create", func(ctx context.Context) error {
		var err error
		id, err = p.client.CreateGrade(ctx, g)
		return err
	}, nil)
	if err != nil {
		return 0, err
	}
	return id, p.reloadGrades(ctx)
}

// Update обновляет поля грейда.
func (p *Grades) Update(ctx context.Context, id int64, g model.Grade) error {
	g.ID = id
	err := p.run(ctx, "grades.update", func(ctx context.Context) error {
		return p.client.UpdateGrade(ctx, id, g)
	}, nil)
	if err != nil {
		return err
	}
	return p.reloadGrades(ctx)
}

// InUse проверяет по локальному списку пользователей, назначен ли грейд.
func (p *Grades) InUse(id int64) bool {
	used := false
	p.read(func() {
		for _, u := range p.users {
			if u.GradeID == id {
				used = true
				return
			}
		}
	})
	return used
}

// Delete удаляет грейд. Назначенный пользователям грейд не удаляется (ErrGradeInUse).
func (p *Grades) Delete(ctx context.Context, id int64) error {
	if p.InUse(id) {
		return ErrGradeInUse
	}
	if err := p.confirmed("Are you sure you want to delete this grade?"); err != nil {
		return err
	}
	err := p.run(ctx, "grades.delete", func(ctx context.Context) error {
		return p.client.DeleteGrade(ctx, id)
	}, nil)
	if err != nil {
		return err
	}
	return p.reloadGrades(ctx)
}
