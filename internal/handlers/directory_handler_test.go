package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_Lifecycle(t *testing.T) {
	e := newTestEnv(t)

	var dep struct {
		DepartmentID int64 `json:"department_id"`
	}
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/api/departments", map[string]string{"name": "HR"}, &dep))
	var gr struct {
		GradeID int64 `json:"grade_id"`
	}
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/api/grades", map[string]any{"name": "Senior", "level": 3}, &gr))

	var user struct {
		UserID int64 `json:"user_id"`
	}
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/api/users", map[string]any{
		"username": "alice", "password": "secret1", "role": "staff",
		"department_id": dep.DepartmentID, "grade_id": gr.GradeID,
	}, &user))

	var deps struct {
		Departments []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"departments"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/departments", nil, &deps))
	require.Len(t, deps.Departments, 1)

	var users struct {
		Users []struct {
			Username       string `json:"username"`
			DepartmentName string `json:"department_name"`
			GradeName      string `json:"grade_name"`
		} `json:"users"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, fmt.Sprintf("/api/users?department_id=%d", dep.DepartmentID), nil, &users))
	require.Len(t, users.Users, 1)
	assert.Equal(t, "HR", users.Users[0].DepartmentName)
	assert.Equal(t, "Senior", users.Users[0].GradeName)

	var errBody errorBody
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodDelete, fmt.Sprintf("/api/grades/%d", gr.GradeID), nil, &errBody))
	assert.Equal(t, "Cannot delete grade in use by users", errBody.Error)

	var msg messageBody
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.UserID), map[string]string{"username": "alice.b"}, &msg))
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodPut, fmt.Sprintf("/api/departments/%d", dep.DepartmentID), map[string]string{"name": "People"}, &msg))
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.UserID), nil, &msg))
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, fmt.Sprintf("/api/grades/%d", gr.GradeID), nil, &msg))
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, fmt.Sprintf("/api/departments/%d", dep.DepartmentID), nil, &msg))

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.UserID), nil, &errBody))
	assert.Equal(t, "User not found or already inactive", errBody.Error)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodDelete, "/api/users/abc", nil, &errBody))
}

func TestDirectory_CreateUserValidation(t *testing.T) {
	e := newTestEnv(t)
	var errBody errorBody
	code := e.do(t, http.MethodPost, "/api/users", map[string]any{"username": "bob", "password": "secret1"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Department and grade required", errBody.Error)
}
