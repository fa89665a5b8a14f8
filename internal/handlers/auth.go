package handlers

import (
	"net/http"
	"time"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/service"

	"go.uber.org/zap"
)

// AuthHandler - вход, выход и статус готовности.
type AuthHandler struct {
	DirectoryService *service.DirectoryService
	StatusService    *service.StatusService
	Logger           *zap.SugaredLogger
}

func NewAuthHandler(dir *service.DirectoryService, status *service.StatusService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{DirectoryService: dir, StatusService: status, Logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login проверяет учётные данные и возвращает запись пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := h.DirectoryService.Login(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.Logger.Infow("Login: rejected", "username", req.Username, "error", err)
		fail(w, h.Logger, "Login", err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string      `json:"message"`
		User    *model.User `json:"user"`
	}{"Login successful", u})
}

// Logout - сессий на сервере нет, ответ всегда успешный.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	st := h.StatusService.Check(r.Context())
	writeJSON(w, http.StatusOK, struct {
		service.Readiness
		DurationS float64 `json:"duration_s"`
	}{st, seconds(start)})
}
