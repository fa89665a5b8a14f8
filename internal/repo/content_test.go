package repo

import (
	"context"
	"testing"

	"PolicyDesk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRepository_FilesLifecycle(t *testing.T) {
	r := NewDocumentRepository(newTestDB(t))
	ctx := context.Background()

	c := &model.Collection{Name: "HR-Policies", StoragePath: "/tmp/hr"}
	require.NoError(t, r.CreateCollection(ctx, c))
	require.NoError(t, r.AddFiles(ctx, []model.CollectionFile{
		{CollectionID: c.ID, Name: "leave.txt", StoredPath: "a", Content: "old"},
		{CollectionID: c.ID, Name: "travel.pdf", StoredPath: "b"},
	}))
	// повторная загрузка заменяет файл
	require.NoError(t, r.AddFiles(ctx, []model.CollectionFile{{CollectionID: c.ID, Name: "leave.txt", StoredPath: "c", Content: "new"}}))

	got, err := r.CollectionByName(ctx, "HR-Policies")
	require.NoError(t, err)
	require.Len(t, got.Files, 2)

	f, err := r.DeleteFile(ctx, c.ID, "leave.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", f.Content)
	_, err = r.DeleteFile(ctx, c.ID, "leave.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.DeleteCollection(ctx, c.ID))
	_, err = r.CollectionByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModelRepository_AssignmentsResolveByScope(t *testing.T) {
	r := NewModelRepository(newTestDB(t))
	ctx := context.Background()

	m1 := &model.ModelConfig{Name: "A", ModelPath: "a", EmbedModelPath: "e", StoragePath: "s", MaxContextTokens: 1, MaxNewTokens: 1}
	m2 := &model.ModelConfig{Name: "B", ModelPath: "b", EmbedModelPath: "e", StoragePath: "s", MaxContextTokens: 1, MaxNewTokens: 1}
	require.NoError(t, r.CreateModel(ctx, m1))
	require.NoError(t, r.CreateModel(ctx, m2))
	assert.Equal(t, model.ModelNotLoaded, m1.Status)

	require.NoError(t, r.Assign(ctx, &model.ModelAssignment{Scope: model.ScopeDepartment, TargetID: 5, ModelID: m1.ID}))
	require.NoError(t, r.Assign(ctx, &model.ModelAssignment{Scope: model.ScopeUser, TargetID: 7, ModelID: m2.ID}))
	// повтор обновляет is_default, а не падает на уникальном индексе
	require.NoError(t, r.Assign(ctx, &model.ModelAssignment{Scope: model.ScopeUser, TargetID: 7, ModelID: m2.ID, IsDefault: true}))

	ids, err := r.AssignedModelIDs(ctx, 7, ptr(int64(5)), nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{m1.ID, m2.ID}, ids)

	ids, err = r.AssignedModelIDs(ctx, 8, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	empty, err := r.Models(ctx, []int64{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	loaded, err := r.AnyLoaded(ctx)
	require.NoError(t, err)
	assert.False(t, loaded)
	require.NoError(t, r.SetStatus(ctx, m1.ID, model.ModelLoaded))
	loaded, err = r.AnyLoaded(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)

	taken, err := r.NameTaken(ctx, "A")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestHistoryRepository_UserHideVsAdminDelete(t *testing.T) {
	db := newTestDB(t)
	dir := NewDirectoryRepository(db)
	r := NewHistoryRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "anna", PasswordHash: "h", Role: model.RoleStaff}
	require.NoError(t, dir.CreateUser(ctx, u))

	h1 := &model.ChatHistory{UserID: u.ID, UserMessage: "q1", AIResponse: "a1"}
	h2 := &model.ChatHistory{UserID: u.ID, UserMessage: "q2", AIResponse: "a2"}
	require.NoError(t, r.Append(ctx, h1))
	require.NoError(t, r.Append(ctx, h2))

	require.NoError(t, r.HideForUser(ctx, h1.ID, u.ID))
	assert.ErrorIs(t, r.HideForUser(ctx, h1.ID, u.ID+1), ErrNotFound)

	mine, err := r.ForUser(ctx, u.ID, 50)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "q2", mine[0].UserMessage)

	all, err := r.All(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "anna", all[0].Username)

	require.NoError(t, r.Delete(ctx, h1.ID))
	assert.ErrorIs(t, r.Delete(ctx, h1.ID), ErrNotFound)
}

func TestInitDB_SQLitePath(t *testing.T) {
	dir := t.TempDir()
	db, err := InitDB(dir + "/nested/policydesk.db")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	assert.NoError(t, sqlDB.Ping())
	assert.True(t, db.Migrator().HasTable(&model.ChatHistory{}))
}

func TestSQLiteDSNHelpers(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@h/db"))
	assert.False(t, isPostgres("policydesk.db"))
	assert.Equal(t, ".", sqlitePath("file::memory:?cache=shared"))
	assert.Equal(t, "data/x.db", sqlitePath("file:data/x.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(1)", withForeignKeys("x.db"))
	assert.Equal(t, "x.db?a=1&_pragma=foreign_keys(1)", withForeignKeys("x.db?a=1"))
}
