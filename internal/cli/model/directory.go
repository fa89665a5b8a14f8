package model

// Роли пользователей.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User - запись пользователя в том виде, в котором её отдаёт /api/users.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	DepartmentID   int64  `json:"department_id,omitempty"`
	GradeID        int64  `json:"grade_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	GradeName      string `json:"grade_name,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// NewUser - тело запроса на создание пользователя.
type NewUser struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"department_id"`
	GradeID      int64  `json:"grade_id"`
}

// UserUpdate - изменяемые поля пользователя; нулевые значения сервер подставляет из текущей записи.
type UserUpdate struct {
	Username     string `json:"username"`
	Role         string `json:"role,omitempty"`
	DepartmentID int64  `json:"department_id,omitempty"`
	GradeID      int64  `json:"grade_id,omitempty"`
}

// Department - подразделение.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Grade - грейд (уровень должности).
type Grade struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description,omitempty"`
}
