package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"PolicyDesk/internal/config"
	"PolicyDesk/internal/handlers"
	"PolicyDesk/internal/repo"
	"PolicyDesk/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router http.Handler
	svc    handlers.Services
}

// newTestEnv собирает роутер поверх SQLite во временном каталоге и заводит администратора admin/admin123.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{DatabaseDSN: filepath.Join(dir, "test.db"), UploadDir: filepath.Join(dir, "uploads")}
	logger := zap.NewNop().Sugar()

	db, err := repo.InitDB(cfg.DatabaseDSN)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	dirRepo := repo.NewDirectoryRepository(db)
	docRepo := repo.NewDocumentRepository(db)
	modelRepo := repo.NewModelRepository(db)
	histRepo := repo.NewHistoryRepository(db)

	svc := handlers.Services{
		Directory: service.NewDirectoryService(dirRepo, logger),
		Documents: service.NewDocumentService(dirRepo, modelRepo, docRepo, cfg.UploadDir, logger),
		Models:    service.NewModelService(dirRepo, modelRepo, logger),
		Chat:      service.NewChatService(dirRepo, modelRepo, docRepo, histRepo, logger),
		Status:    service.NewStatusService(db, modelRepo),
	}
	_, err = svc.Directory.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	return &testEnv{router: handlers.NewHandler(svc, logger, cfg).Router, svc: svc}
}

// do выполняет запрос с JSON-телом (body == nil - без тела) и декодирует ответ в out.
func (e *testEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out), rr.Body.String())
	}
	return rr.Code
}

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}
