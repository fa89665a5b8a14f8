package service

import (
	"context"
	"errors"
	"strings"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/repo"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// ErrInvalidCredentials - неверный логин или пароль.
var ErrInvalidCredentials = unauthorized("Invalid credentials")

// DirectoryService - вход, пользователи, подразделения и грейды.
type DirectoryService struct {
	repo   repo.DirectoryRepository
	logger *zap.SugaredLogger
}

func NewDirectoryService(r repo.DirectoryRepository, logger *zap.SugaredLogger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DirectoryService{repo: r, logger: logger}
}

// Login проверяет пароль и роль. Роль по умолчанию - staff.
func (s *DirectoryService) Login(ctx context.Context, username, password, role string) (*model.User, error) {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, badRequest("Username and password required")
	}
	if role == "" {
		role = model.RoleStaff
	}
	u, err := s.repo.UserByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, unauthorized("Invalid role for this user")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureAdmin создаёт администратора, если в базе нет ни одного пользователя.
func (s *DirectoryService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	users, err := s.repo.Users(ctx, 0)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := s.repo.CreateUser(ctx, &model.User{Username: username, PasswordHash: string(hash), Role: model.RoleAdmin}); err != nil {
		return false, err
	}
	s.logger.Warnw("created bootstrap admin", "username", username)
	return true, nil
}

func (s *DirectoryService) Departments(ctx context.Context) ([]model.Department, error) {
	return s.repo.Departments(ctx)
}

func (s *DirectoryService) CreateDepartment(ctx context.Context, name, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, badRequest("Department name required")
	}
	d := &model.Department{Name: name, Description: description}
	if err := s.repo.CreateDepartment(ctx, d); err != nil {
		return 0, badRequest("Failed to create department: %v", err)
	}
	return d.ID, nil
}

func (s *DirectoryService) UpdateDepartment(ctx context.Context, id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return badRequest("Department name required")
	}
	err := s.repo.UpdateDepartment(ctx, id, name, description)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Department not found")
	}
	if err != nil {
		return badRequest("Failed to update department: %v", err)
	}
	return nil
}

// DeleteDepartment не удаляет подразделение с активными пользователями.
func (s *DirectoryService) DeleteDepartment(ctx context.Context, id int64) error {
	n, err := s.repo.CountUsers(ctx, "department_id", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return badRequest("Cannot delete department in use by users")
	}
	if err := s.repo.DeleteDepartment(ctx, id); errors.Is(err, repo.ErrNotFound) {
		return notFound("Department not found")
	} else if err != nil {
		return badRequest("Failed to delete department: %v", err)
	}
	return nil
}

func (s *DirectoryService) Grades(ctx context.Context) ([]model.Grade, error) {
	return s.repo.Grades(ctx)
}

func (s *DirectoryService) CreateGrade(ctx context.Context, g model.Grade) (int64, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || g.Level == 0 {
		return 0, badRequest("Grade name and level required")
	}
	if err := s.repo.CreateGrade(ctx, &g); err != nil {
		return 0, badRequest("Failed to create grade: %v", err)
	}
	return g.ID, nil
}

func (s *DirectoryService) UpdateGrade(ctx context.Context, id int64, g model.Grade) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || g.Level == 0 {
		return badRequest("Grade name and level required")
	}
	err := s.repo.UpdateGrade(ctx, id, g.Name, g.Level, g.Description)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Grade not found")
	}
	if err != nil {
		return badRequest("Failed to update grade: %v", err)
	}
	return nil
}

// DeleteGrade не удаляет грейд, назначенный активным пользователям.
func (s *DirectoryService) DeleteGrade(ctx context.Context, id int64) error {
	n, err := s.repo.CountUsers(ctx, "grade_id", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return badRequest("Cannot delete grade in use by users")
	}
	if err := s.repo.DeleteGrade(ctx, id); errors.Is(err, repo.ErrNotFound) {
		return notFound("Grade not found")
	} else if err != nil {
		return badRequest("Failed to delete grade: %v", err)
	}
	return nil
}

func (s *DirectoryService) Users(ctx context.Context, departmentID int64) ([]model.User, error) {
	return s.repo.Users(ctx, departmentID)
}

// User возвращает активного пользователя или 404.
func (s *DirectoryService) User(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.UserByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("User not found")
	}
	return u, err
}

// NewUser - поля создания пользователя.
type NewUser struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"department_id"`
	GradeID      int64  `json:"grade_id"`
}

func (s *DirectoryService) CreateUser(ctx context.Context, in NewUser) (int64, error) {
	in.Username, in.Password = strings.TrimSpace(in.Username), strings.TrimSpace(in.Password)
	if in.Role == "" {
		in.Role = model.RoleStaff
	}
	switch {
	case in.Username == "" || in.Password == "":
		return 0, badRequest("Username and password required")
	case in.DepartmentID == 0 || in.GradeID == 0:
		return 0, badRequest("Department and grade required")
	case in.Role != model.RoleStaff && in.Role != model.RoleAdmin:
		return 0, badRequest("Invalid role")
	case len(in.Password) < minPasswordLen:
		return 0, badRequest("Password must be at least 6 characters")
	}
	if _, err := s.repo.UserByUsername(ctx, in.Username); err == nil {
		return 0, badRequest("Username already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return 0, err
	}
	if err := s.checkRefs(ctx, in.DepartmentID, in.GradeID); err != nil {
		return 0, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	u := &model.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		DepartmentID: &in.DepartmentID,
		GradeID:      &in.GradeID,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return 0, badRequest("Failed to create user: %v", err)
	}
	s.logger.Infow("user created", "user_id", u.ID, "role", u.Role)
	return u.ID, nil
}

func (s *DirectoryService) checkRefs(ctx context.Context, departmentID, gradeID int64) error {
	if departmentID != 0 {
		if _, err := s.repo.DepartmentByID(ctx, departmentID); errors.Is(err, repo.ErrNotFound) {
			return badRequest("Invalid department_id")
		} else if err != nil {
			return err
		}
	}
	if gradeID != 0 {
		if _, err := s.repo.GradeByID(ctx, gradeID); errors.Is(err, repo.ErrNotFound) {
			return badRequest("Invalid grade_id")
		} else if err != nil {
			return err
		}
	}
	return nil
}

// UserUpdate - изменяемые поля; пустые значения берутся из текущей записи.
type UserUpdate struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"department_id"`
	GradeID      int64  `json:"grade_id"`
}

func (s *DirectoryService) UpdateUser(ctx context.Context, id int64, in UserUpdate) error {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return badRequest("Username required")
	}
	u, err := s.repo.UserByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("User not found or inactive")
	}
	if err != nil {
		return err
	}
	if other, err := s.repo.UserByUsername(ctx, in.Username); err == nil && other.ID != id {
		return badRequest("Username already exists")
	}
	if in.Role != "" {
		if in.Role != model.RoleStaff && in.Role != model.RoleAdmin {
			return badRequest("Invalid role")
		}
		u.Role = in.Role
	}
	if err := s.checkRefs(ctx, in.DepartmentID, in.GradeID); err != nil {
		return err
	}
	if in.DepartmentID != 0 {
		u.DepartmentID = &in.DepartmentID
	}
	if in.GradeID != 0 {
		u.GradeID = &in.GradeID
	}
	u.Username = in.Username
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return badRequest("Failed to update user: %v", err)
	}
	return nil
}

// DeleteUser деактивирует пользователя.
func (s *DirectoryService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeactivateUser(ctx, id); errors.Is(err, repo.ErrNotFound) {
		return notFound("User not found or already inactive")
	} else if err != nil {
		return badRequest("Failed to delete user: %v", err)
	}
	return nil
}
