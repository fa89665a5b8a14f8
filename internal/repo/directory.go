package repo

import (
	"context"
	"errors"

	"PolicyDesk/internal/model"

	"gorm.io/gorm"
)

// DirectoryRepository - подразделения, грейды и пользователи.
type DirectoryRepository interface {
	Departments(ctx context.Context) ([]model.Department, error)
	DepartmentByID(ctx context.Context, id int64) (*model.Department, error)
	CreateDepartment(ctx context.Context, d *model.Department) error
	UpdateDepartment(ctx context.Context, id int64, name, description string) error
	DeleteDepartment(ctx context.Context, id int64) error

	Grades(ctx context.Context) ([]model.Grade, error)
	GradeByID(ctx context.Context, id int64) (*model.Grade, error)
	CreateGrade(ctx context.Context, g *model.Grade) error
	UpdateGrade(ctx context.Context, id int64, name string, level int, description string) error
	DeleteGrade(ctx context.Context, id int64) error

	// Users возвращает активных пользователей; departmentID == 0 - всех.
	Users(ctx context.Context, departmentID int64) ([]model.User, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
	UserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, u *model.User) error
	DeactivateUser(ctx context.Context, id int64) error
	// CountUsers считает активных пользователей с заданным полем (department_id или grade_id).
	CountUsers(ctx context.Context, column string, id int64) (int64, error)
}

// ErrNotFound - запись не найдена или неактивна.
var ErrNotFound = errors.New("record not found")

type directoryRepo struct {
	db *gorm.DB
}

// NewDirectoryRepository создаёт реализацию на gorm.
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepo{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *directoryRepo) Departments(ctx context.Context) ([]model.Department, error) {
	var out []model.Department
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&out).Error
	return out, err
}

func (r *directoryRepo) DepartmentByID(ctx context.Context, id int64) (*model.Department, error) {
	var d model.Department
	if err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&d).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *directoryRepo) CreateDepartment(ctx context.Context, d *model.Department) error {
	d.IsActive = true
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *directoryRepo) UpdateDepartment(ctx context.Context, id int64, name, description string) error {
	tx := r.db.WithContext(ctx).Model(&model.Department{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *directoryRepo) DeleteDepartment(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Department{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *directoryRepo) Grades(ctx context.Context) ([]model.Grade, error) {
	var out []model.Grade
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("level, name").Find(&out).Error
	return out, err
}

func (r *directoryRepo) GradeByID(ctx context.Context, id int64) (*model.Grade, error) {
	var g model.Grade
	if err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *directoryRepo) CreateGrade(ctx context.Context, g *model.Grade) error {
	g.IsActive = true
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *directoryRepo) UpdateGrade(ctx context.Context, id int64, name string, level int, description string) error {
	tx := r.db.WithContext(ctx).Model(&model.Grade{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "level": level, "description": description})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *directoryRepo) DeleteGrade(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Grade{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// usersQuery - выборка пользователей с именами подразделения и грейда.
func (r *directoryRepo) usersQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*, departments.name AS department_name, grades.name AS grade_name").
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Joins("LEFT JOIN grades ON grades.id = users.grade_id").
		Where("users.is_active = ?", true)
}

func (r *directoryRepo) Users(ctx context.Context, departmentID int64) ([]model.User, error) {
	q := r.usersQuery(ctx)
	if departmentID > 0 {
		q = q.Where("users.department_id = ?", departmentID)
	}
	var out []model.User
	err := q.Order("users.id").Find(&out).Error
	return out, err
}

func (r *directoryRepo) UserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.usersQuery(ctx).Where("users.id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *directoryRepo) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.usersQuery(ctx).Where("users.username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *directoryRepo) CreateUser(ctx context.Context, u *model.User) error {
	u.IsActive = true
	return r.db.WithContext(ctx).Omit("Department", "Grade").Create(u).Error
}

func (r *directoryRepo) UpdateUser(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).
		Updates(map[string]any{
			"username":      u.Username,
			"role":          u.Role,
			"department_id": u.DepartmentID,
			"grade_id":      u.GradeID,
		}).Error
}

func (r *directoryRepo) DeactivateUser(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND is_active = ?", id, true).Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *directoryRepo) CountUsers(ctx context.Context, column string, id int64) (int64, error) {
	switch column {
	case "department_id", "grade_id":
	default:
		return 0, errors.New("unsupported column " + column)
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where(column+" = ? AND is_active = ?", id, true).Count(&n).Error
	return n, err
}
