package service

import (
	"context"
	"path/filepath"
	"testing"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/repo"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	dir     repo.DirectoryRepository
	docs    repo.DocumentRepository
	models  repo.ModelRepository
	history repo.HistoryRepository

	directory *DirectoryService
	documents *DocumentService
	modelSvc  *ModelService
	chat      *ChatService
	status    *StatusService
}

// newFixture поднимает SQLite во временном каталоге и все сервисы поверх неё.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	f := &fixture{
		db:      db,
		dir:     repo.NewDirectoryRepository(db),
		docs:    repo.NewDocumentRepository(db),
		models:  repo.NewModelRepository(db),
		history: repo.NewHistoryRepository(db),
	}
	f.directory = NewDirectoryService(f.dir, nil)
	f.documents = NewDocumentService(f.dir, f.models, f.docs, filepath.Join(t.TempDir(), "uploads"), nil)
	f.modelSvc = NewModelService(f.dir, f.models, nil)
	f.chat = NewChatService(f.dir, f.models, f.docs, f.history, nil)
	f.status = NewStatusService(db, f.models)
	return f
}

// seed создаёт подразделение, грейд, администратора и сотрудника.
func (f *fixture) seed(t *testing.T) (admin, staff *model.User) {
	t.Helper()
	ctx := context.Background()
	dep := &model.Department{Name: "HR"}
	require.NoError(t, f.dir.CreateDepartment(ctx, dep))
	gr := &model.Grade{Name: "Senior", Level: 3}
	require.NoError(t, f.dir.CreateGrade(ctx, gr))

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	admin = &model.User{Username: "root", PasswordHash: string(hash), Role: model.RoleAdmin}
	require.NoError(t, f.dir.CreateUser(ctx, admin))
	staff = &model.User{Username: "alice", PasswordHash: string(hash), Role: model.RoleStaff, DepartmentID: &dep.ID, GradeID: &gr.ID}
	require.NoError(t, f.dir.CreateUser(ctx, staff))
	return admin, staff
}

// collectionWith создаёт коллекцию с одним текстовым файлом и модель, привязанную к ней.
func (f *fixture) collectionWith(t *testing.T, name, file, content string) (*model.Collection, *model.ModelConfig) {
	t.Helper()
	ctx := context.Background()
	c := &model.Collection{Name: name, StoragePath: t.TempDir()}
	require.NoError(t, f.docs.CreateCollection(ctx, c))
	require.NoError(t, f.docs.AddFiles(ctx, []model.CollectionFile{{CollectionID: c.ID, Name: file, StoredPath: file, Content: content}}))
	m := &model.ModelConfig{
		Name: "M-" + name, ModelPath: "m.gguf", EmbedModelPath: "e", StoragePath: c.StoragePath,
		CollectionID: &c.ID, MaxContextTokens: 4096, MaxNewTokens: 256,
	}
	require.NoError(t, f.models.CreateModel(ctx, m))
	return c, m
}

func ptr[T any](v T) *T { return &v }

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	code, _ := Describe(err, "")
	return code
}
