package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PolicyDesk/internal/config"
	"PolicyDesk/internal/handlers"
	"PolicyDesk/internal/logger"
	"PolicyDesk/internal/middleware"
	"PolicyDesk/internal/repo"
	"PolicyDesk/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.NewConfig()

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() { _ = sugar.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	dirRepo := repo.NewDirectoryRepository(gormDB)
	docRepo := repo.NewDocumentRepository(gormDB)
	modelRepo := repo.NewModelRepository(gormDB)
	histRepo := repo.NewHistoryRepository(gormDB)

	svc := handlers.Services{
		Directory: service.NewDirectoryService(dirRepo, sugar),
		Documents: service.NewDocumentService(dirRepo, modelRepo, docRepo, cfg.UploadDir, sugar),
		Models:    service.NewModelService(dirRepo, modelRepo, sugar),
		Chat:      service.NewChatService(dirRepo, modelRepo, docRepo, histRepo, sugar),
		Status:    service.NewStatusService(gormDB, modelRepo),
	}
	if _, err := svc.Directory.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		sugar.Fatalw("failed to seed admin", "error", err)
	}

	h := handlers.NewHandler(svc, sugar, cfg)
	srv := &http.Server{Addr: cfg.ServerAddr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}

	sugar.Infow("Starting server",
		"addr", cfg.ServerAddr,
		"DatabaseDSN", cfg.DatabaseDSN,
		"UploadDir", cfg.UploadDir,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("graceful shutdown failed", "error", err)
		}
		sugar.Infow("server stopped")
	}
}
