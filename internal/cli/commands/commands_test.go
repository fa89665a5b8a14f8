package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_PersistsSession(t *testing.T) {
	out := withStdoutCapture(t)
	var got map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"message":"ok","user":{"id":7,"username":"anna","role":"staff"}}`))
	})
	env := newTestEnv(t, mux, "")

	code := Dispatch(context.Background(), env, []string{"login", "anna", "secret"})
	require.Equal(t, 0, code, out.String())
	assert.Equal(t, "staff", got["role"])
	assert.Contains(t, out.String(), "Logged in as anna (staff), home /staff")

	id, ok := env.Session.Current()
	require.True(t, ok)
	assert.Equal(t, int64(7), id.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, jsonErr(http.StatusUnauthorized, "Invalid credentials"), "")

	code := Dispatch(context.Background(), env, []string{"login", "anna", "bad", "admin"})
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "login error: Invalid credentials")
	_, ok := env.Session.Current()
	assert.False(t, ok)
}

func TestLogout_ClearsSessionEvenIfServerFails(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, jsonErr(http.StatusInternalServerError, "down"), "admin")

	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"logout"}))
	assert.Contains(t, out.String(), "Logged out")
	_, ok := env.Session.Current()
	assert.False(t, ok)
}

func TestStatus_PrintsLine(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, jsonHandler(`{"db_ready":true,"model_loaded":false,"ready":false,"duration_s":0.5}`), "")

	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"status"}))
	assert.Contains(t, out.String(), "DB: ready | Model: not loaded | Ready: no")
	assert.Contains(t, out.String(), "0.50 s")
}

func TestTheme_SetAndToggle(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, nil, "")

	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"theme", "dark"}))
	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"theme", "toggle"}))
	assert.Equal(t, "light", env.Session.Theme())
	assert.Contains(t, out.String(), "Theme: dark")
	assert.Equal(t, 1, Dispatch(context.Background(), env, []string{"theme", "neon"}))
}

func TestDepartments_ListAndDeleteDeclined(t *testing.T) {
	out := withStdoutCapture(t)
	withStdin(t, "n\n")
	var deletes atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/departments", jsonHandler(`{"departments":[{"id":3,"name":"Finance","description":"Money"}]}`))
	mux.HandleFunc("/api/departments/3", func(w http.ResponseWriter, r *http.Request) {
		deletes.Add(1)
		_, _ = w.Write([]byte(`{}`))
	})
	env := newTestEnv(t, mux, "admin")

	require.Equal(t, 0, Dispatch(context.Background(), env, []string{"departments", "list"}))
	assert.Contains(t, out.String(), "Finance")

	code := Dispatch(context.Background(), env, []string{"departments", "delete", "3"})
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Cancelled")
	assert.Zero(t, deletes.Load())
}

func TestDepartments_DeleteWithYes(t *testing.T) {
	withStdoutCapture(t)
	var deletes atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/departments", jsonHandler(`{"departments":[]}`))
	mux.HandleFunc("/api/departments/3", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deletes.Add(1)
		_, _ = w.Write([]byte(`{}`))
	})
	env := newTestEnv(t, mux, "admin")
	env.Config.AssumeYes = true

	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"departments", "delete", "3"}))
	assert.Equal(t, int64(1), deletes.Load())
}

func TestDepartments_StaffIsRefused(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, nil, "staff")
	assert.Equal(t, 1, Dispatch(context.Background(), env, []string{"departments", "list"}))
	assert.Contains(t, out.String(), "Not allowed at /admin/departments")
}

func TestGrades_DeleteInUse(t *testing.T) {
	out := withStdoutCapture(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/grades", jsonHandler(`{"grades":[{"id":2,"name":"Senior","level":3}]}`))
	mux.HandleFunc("/api/users", jsonHandler(`{"users":[{"id":9,"username":"bob","grade_id":2}]}`))
	env := newTestEnv(t, mux, "admin")
	env.Config.AssumeYes = true

	assert.Equal(t, 1, Dispatch(context.Background(), env, []string{"grades", "delete", "2"}))
	assert.Contains(t, out.String(), "grades error: Cannot delete grade in use by users")
}

func TestUsers_AddValidation(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, nil, "admin")
	assert.Equal(t, 2, Dispatch(context.Background(), env, []string{"users", "add", "bob", "pw", "staff", "x", "1"}))
	assert.Contains(t, out.String(), "Usage: users list")
}

func TestDocs_UploadRejectsExtension(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, nil, "admin")
	assert.Equal(t, 1, Dispatch(context.Background(), env, []string{"docs", "upload", "HR", "notes.exe"}))
	assert.Contains(t, out.String(), "Only PDF, TXT, and DOCX files are allowed")
}

func TestModels_CreateRequiresPrompt(t *testing.T) {
	out := withStdoutCapture(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models", jsonHandler(`{"models":[]}`))
	mux.HandleFunc("/api/documents/collections", jsonHandler(`{"collections":[{"id":8,"name":"HR"}]}`))
	env := newTestEnv(t, mux, "admin")

	assert.Equal(t, 1, Dispatch(context.Background(), env, []string{"models", "create", "-collection", "8"}))
	assert.Contains(t, out.String(), "Please provide a custom prompt.")
}

func TestAssign_PostsScope(t *testing.T) {
	out := withStdoutCapture(t)
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/assign/grade", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"message":"Model assigned to grade successfully"}`))
	})
	env := newTestEnv(t, mux, "admin")

	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"assign", "grade", "2", "4", "default"}))
	assert.Contains(t, out.String(), "Model assigned to grade successfully")
	assert.Equal(t, float64(2), body["grade_id"])
	assert.Equal(t, true, body["is_default"])
	assert.Equal(t, float64(1), body["assigned_by"])
}

func TestHistory_ListAndShow(t *testing.T) {
	out := withStdoutCapture(t)
	env := newTestEnv(t, jsonHandler(`{"history":[{"id":5,"user_message":"How many leave days?","ai_response":"15","document_collection_name":"HR","timestamp":"2024-01-01"}]}`), "staff")

	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"history"}))
	assert.Contains(t, out.String(), "How many leave days?")
	assert.Equal(t, 0, Dispatch(context.Background(), env, []string{"history", "show", "5"}))
	assert.Contains(t, out.String(), "A: 15")
	assert.Equal(t, 1, Dispatch(context.Background(), env, []string{"history", "show", "6"}))
}

func TestChat_StaffAsksOneQuestion(t *testing.T) {
	out := withStdoutCapture(t)
	withStdin(t, "How many leave days?\n/quit\n")
	var query atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", jsonHandler(`{"db_ready":true,"model_loaded":true,"ready":true}`))
	mux.HandleFunc("/api/history", jsonHandler(`{"history":[]}`))
	mux.HandleFunc("/api/documents/collections", jsonHandler(`{"collections":[{"id":8,"name":"HR-Policies"}]}`))
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		query.Store(req)
		_, _ = w.Write([]byte(`{"answer":"15 days","source_collection":"HR-Policies"}`))
	})
	env := newTestEnv(t, mux, "staff")

	require.Equal(t, 0, Dispatch(context.Background(), env, []string{"chat"}))
	assert.Contains(t, out.String(), "* 8 HR-Policies")
	assert.Contains(t, out.String(), "15 days\n\n*Source: HR-Policies*")
	req := query.Load().(map[string]any)
	assert.Equal(t, float64(8), req["collection_id"])
	assert.NotContains(t, req, "model_id")
}

func jsonErr(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}
}
