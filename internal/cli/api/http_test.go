package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PolicyDesk/internal/cli/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func TestGetJSON_DecodesBodyAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/documents/collections", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		_, _ = w.Write([]byte(`{"collections":[{"id":1,"name":"hr","files":["a.pdf","b.txt"]}]}`))
	})

	cols, err := c.Collections(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "hr", cols[0].Name)
	assert.Equal(t, []string{"a.pdf", "b.txt"}, cols[0].Files)
}

func TestListEnvelope_MissingKeyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	users, err := c.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	deps, err := c.Departments(ctx)
	require.NoError(t, err)
	assert.Empty(t, deps)

	models, err := c.Models(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestAPIError_FromErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Cannot delete grade in use by users"}`))
	})

	err := c.DeleteGrade(context.Background(), 3)
	require.Error(t, err)
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Cannot delete grade in use by users", ae.Message)
	assert.Equal(t, "Cannot delete grade in use by users", Describe(err, "Failed to delete grade"))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.False(t, IsTransport(err))
}

func TestAPIError_NoBodyUsesFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops, not json"))
	})

	_, err := c.CreateDepartment(context.Background(), model.Department{Name: "Ops"})
	require.Error(t, err)
	assert.Equal(t, "Failed to add department", Describe(err, "Failed to add department"))
	assert.Equal(t, "Internal Server Error", Describe(err, ""))
}

func TestTransportError_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Status(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, 0, StatusCode(err))
	assert.Contains(t, Describe(err, "ignored"), "Error: ")
}

func TestContextCancelAbortsRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Status(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUpload_SendsMultipartFieldsAndFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "policies", r.FormValue("db_name"))
		assert.Equal(t, "4", r.FormValue("user_id"))
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "leave policy", string(data))
		assert.Equal(t, "leave.txt", files[1].Filename)
		_, _ = w.Write([]byte(`{"message":"Uploaded 2 files","collection_name":"policies"}`))
	})

	res, err := c.Upload(context.Background(), 4, "policies", []FilePart{
		{Name: "a.pdf", Data: []byte("%PDF")},
		{Name: "leave.txt", Data: []byte("leave policy")},
	})
	require.NoError(t, err)
	assert.Equal(t, "policies", res.CollectionName)
	assert.Equal(t, "Uploaded 2 files", res.Message)
}

func TestDeleteFile_SendsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hr", body["db_name"])
		assert.Equal(t, "a.pdf", body["filename"])
		assert.Equal(t, float64(2), body["user_id"])
		_, _ = w.Write([]byte(`{"message":"File deleted"}`))
	})

	msg, err := c.DeleteFile(context.Background(), 2, "hr", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "File deleted", msg)
}

func TestLogin_ReturnsUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "anna", req.Username)
		assert.Equal(t, "staff", req.Role)
		_, _ = w.Write([]byte(`{"user":{"id":9,"username":"anna","role":"staff"}}`))
	})

	u, err := c.Login(context.Background(), LoginRequest{Username: "anna", Password: "secret", Role: "staff"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, model.RoleStaff, u.Role)
}

func TestLogin_MissingUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	_, err := c.Login(context.Background(), LoginRequest{Username: "x", Password: "y"})
	assert.Error(t, err)
}

func TestAssignModel_RejectsUnknownScope(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.AssignModel(context.Background(), "team", model.Assignment{})
	require.Error(t, err)
	assert.False(t, IsTransport(err))
}

func TestAssignModel_PostsToScopePath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models/assign/department", r.URL.Path)
		var a model.Assignment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&a))
		assert.Equal(t, int64(5), a.DepartmentID)
		assert.Zero(t, a.UserID)
		assert.True(t, a.IsDefault)
		_, _ = w.Write([]byte(`{"message":"Model assigned"}`))
	})
	msg, err := c.AssignModel(context.Background(), model.ScopeDepartment, model.Assignment{
		DepartmentID: 5, ModelID: 1, AssignedBy: 1, IsDefault: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Model assigned", msg)
}

func TestDeleteHistory_QueryCarriesUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/12", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("user_id"))
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DeleteHistory(context.Background(), 3, 12))
}
