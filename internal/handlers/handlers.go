package handlers

import (
	"PolicyDesk/internal/config"
	"PolicyDesk/internal/middleware"
	"PolicyDesk/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services - зависимости хендлеров.
type Services struct {
	Directory *service.DirectoryService
	Documents *service.DocumentService
	Models    *service.ModelService
	Chat      *service.ChatService
	Status    *service.StatusService
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(svc Services, logger *zap.SugaredLogger, cfg *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithMetrics)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	auth := NewAuthHandler(svc.Directory, svc.Status, logger)
	dir := NewDirectoryHandler(svc.Directory, logger)
	docs := NewDocumentHandler(svc.Documents, logger, cfg)
	models := NewModelHandler(svc.Models, logger)
	chat := NewChatHandler(svc.Chat, logger)

	// Session
	r.Post("/api/login", auth.Login)
	r.Post("/api/logout", auth.Logout)
	r.Get("/api/status", auth.Status)

	// Directory
	r.Route("/api/departments", func(r chi.Router) {
		r.Get("/", dir.Departments)
		r.Post("/", dir.CreateDepartment)
		r.Put("/{id}", dir.UpdateDepartment)
		r.Delete("/{id}", dir.DeleteDepartment)
	})
	r.Route("/api/grades", func(r chi.Router) {
		r.Get("/", dir.Grades)
		r.Post("/", dir.CreateGrade)
		r.Put("/{id}", dir.UpdateGrade)
		r.Delete("/{id}", dir.DeleteGrade)
	})
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", dir.Users)
		r.Post("/", dir.CreateUser)
		r.Put("/{id}", dir.UpdateUser)
		r.Delete("/{id}", dir.DeleteUser)
	})

	// Documents
	r.Get("/api/documents/collections", docs.Collections)
	r.Delete("/api/documents/collections", docs.DeleteCollection)
	r.Delete("/api/documents/files", docs.DeleteFile)
	r.Post("/api/upload", docs.Upload)

	// Models
	r.Get("/api/models", models.List)
	r.Post("/api/models/create", models.Create)
	r.Post("/api/models/assign/{scope}", models.Assign)
	r.Post("/api/load-model/{id}", models.Load)

	// Chat & history
	r.Post("/api/chat", chat.Chat)
	r.Get("/api/history", chat.History)
	r.Get("/api/history/user/{id}", chat.UserHistory)
	r.Delete("/api/history/{id}", chat.DeleteHistory)

	r.Handle("/metrics", promhttp.Handler())

	return &Handler{Router: r}
}
