package model

import "time"

// Роли пользователей.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Department - подразделение.
type Department struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"-"`
}

// Grade - грейд; пара (name, level) уникальна.
type Grade struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex:idx_grade_name_level" json:"name"`
	Level       int    `gorm:"not null;uniqueIndex:idx_grade_name_level" json:"level"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"-"`
}

// User - учётная запись. Удаление мягкое: IsActive=false.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:staff" json:"role"`
	DepartmentID *int64 `gorm:"index" json:"department_id,omitempty"`
	GradeID      *int64 `gorm:"index" json:"grade_id,omitempty"`
	IsActive     bool   `gorm:"not null;default:true" json:"-"`

	Department *Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Grade      *Grade      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	// Заполняются при выборке, в таблице не хранятся.
	DepartmentName string `gorm:"->;-:migration" json:"department_name,omitempty"`
	GradeName      string `gorm:"->;-:migration" json:"grade_name,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
