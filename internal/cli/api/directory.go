package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"PolicyDesk/internal/cli/model"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Departments returns all departments.
func (c *Client) Departments(ctx context.Context) ([]model.Department, error) {
	var resp struct {
		Departments []model.Department `json:"departments"`
	}
	if err := c.GetJSON(ctx, "/api/departments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Departments, nil
}

// CreateDepartment создаёт подразделение и возвращает его ID.
func (c *Client) CreateDepartment(ctx context.Context, d model.Department) (int64, error) {
	var resp struct {
		DepartmentID int64 `json:"department_id"`
	}
	if err := c.PostJSON(ctx, "/api/departments", d, &resp); err != nil {
		return 0, err
	}
	return resp.DepartmentID, nil
}

// UpdateDepartment переименовывает подразделение.
func (c *Client) UpdateDepartment(ctx context.Context, id int64, d model.Department) error {
	return c.PutJSON(ctx, fmt.Sprintf("/api/departments/%d", id), d, nil)
}

// DeleteDepartment удаляет подразделение.
func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.DeleteJSON(ctx, fmt.Sprintf("/api/departments/%d", id), nil, nil, nil)
}

// Grades returns all grades.
func (c *Client) Grades(ctx context.Context) ([]model.Grade, error) {
	var resp struct {
		Grades []model.Grade `json:"grades"`
	}
	if err := c.GetJSON(ctx, "/api/grades", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Grades, nil
}

// CreateGrade создаёт грейд и возвращает его ID.
func (c *Client) CreateGrade(ctx context.Context, g model.Grade) (int64, error) {
	var resp struct {
		GradeID int64 `json:"grade_id"`
	}
	if err := c.PostJSON(ctx, "/api/grades", g, &resp); err != nil {
		return 0, err
	}
	return resp.GradeID, nil
}

// UpdateGrade обновляет грейд.
func (c *Client) UpdateGrade(ctx context.Context, id int64, g model.Grade) error {
	return c.PutJSON(ctx, fmt.Sprintf("/api/grades/%d", id), g, nil)
}

// DeleteGrade удаляет грейд.
func (c *Client) DeleteGrade(ctx context.Context, id int64) error {
	return c.DeleteJSON(ctx, fmt.Sprintf("/api/grades/%d", id), nil, nil, nil)
}

// Users returns all active users.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	return c.users(ctx, nil)
}

// UsersByDepartment returns users of a single department.
func (c *Client) UsersByDepartment(ctx context.Context, departmentID int64) ([]model.User, error) {
	return c.users(ctx, url.Values{"department_id": {strconv.FormatInt(departmentID, 10)}})
}

func (c *Client) users(ctx context.Context, q url.Values) ([]model.User, error) {
	var resp struct {
		Users []model.User `json:"users"`
	}
	if err := c.GetJSON(ctx, "/api/users", q, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// CreateUser создаёт пользователя и возвращает выданный сервером ID.
func (c *Client) CreateUser(ctx context.Context, u model.NewUser) (int64, error) {
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.PostJSON(ctx, "/api/users", u, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// UpdateUser обновляет пользователя.
func (c *Client) UpdateUser(ctx context.Context, id int64, u model.UserUpdate) error {
	return c.PutJSON(ctx, fmt.Sprintf("/api/users/%d", id), u, nil)
}

// DeleteUser деактивирует пользователя.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.DeleteJSON(ctx, fmt.Sprintf("/api/users/%d", id), nil, nil, nil)
}
