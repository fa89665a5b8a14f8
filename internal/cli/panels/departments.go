package panels

import (
	"context"
	"strings"

	"PolicyDesk/internal/cli/model"
)

// DepartmentsClient — часть api.Client для подразделений.
type DepartmentsClient interface {
	Departments(ctx context.Context) ([]model.Department, error)
	CreateDepartment(ctx context.Context, d model.Department) (int64, error)
	UpdateDepartment(ctx context.Context, id int64, d model.Department) error
	DeleteDepartment(ctx context.Context, id int64) error
}

// Departments — экран подразделений.
type Departments struct {
	base
	client DepartmentsClient
	items  []model.Department
}

func NewDepartments(client DepartmentsClient, o Options) *Departments {
	p := &Departments{client: client}
	p.init(o)
	return p
}

// Load загружает список и заменяет локальное состояние.
func (p *Departments) Load(ctx context.Context) error {
	list, err := p.client.Departments(ctx)
	if err != nil {
		return err
	}
	p.apply(func() { p.items = list })
	return nil
}

// Items возвращает копию списка.
func (p *Departments) Items() []model.Department {
	var out []model.Department
	p.read(func() { out = append(out, p.items...) })
	return out
}

// Name ищет название подразделения по id; пустая строка, если не найдено.
func (p *Departments) Name(id int64) string {
	name := ""
	p.read(func() {
		for _, d := range p.items {
			if d.ID == id {
				name = d.Name
				return
			}
		}
	})
	return name
}

// Create создаёт подразделение и перезагружает список.
func (p *Departments) Create(ctx context.Context, name, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalid("name", "Department name is required")
	}
	var id int64
	err := p.run(ctx, "departments.create", func(ctx context.Context) error {
		var err error
		id, err = p.client.CreateDepartment(ctx, model.Department{Name: name, Description: description})
		return err
	}, nil)
	if err != nil {
		return 0, err
	}
	return id, p.Load(ctx)
}

// Update переименовывает подразделение.
func (p *Departments) Update(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name", "Department name is required")
	}
	err := p.run(ctx, "departments.update", func(ctx context.Context) error {
		return p.client.UpdateDepartment(ctx, id, model.Department{ID: id, Name: name})
	}, nil)
	if err != nil {
		return err
	}
	return p.Load(ctx)
}

// Delete удаляет подразделение после подтверждения.
func (p *Departments) Delete(ctx context.Context, id int64) error {
	if err := p.confirmed("Are you sure you want to delete this department?"); err != nil {
		return err
	}
	err := p.run(ctx, "departments.delete", func(ctx context.Context) error {
		return p.client.DeleteDepartment(ctx, id)
	}, nil)
	if err != nil {
		return err
	}
	return p.Load(ctx)
}
