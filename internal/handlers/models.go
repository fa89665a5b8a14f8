package handlers

import (
	"net/http"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ModelHandler - конфигурации моделей.
type ModelHandler struct {
	Service *service.ModelService
	Logger  *zap.SugaredLogger
}

func NewModelHandler(svc *service.ModelService, logger *zap.SugaredLogger) *ModelHandler {
	return &ModelHandler{Service: svc, Logger: logger}
}

// List: ?user_id= сужает список до назначенных пользователю моделей.
func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), queryInt(r, "user_id"))
	if err != nil {
		fail(w, h.Logger, "Models", err, "Database error")
		return
	}
	if list == nil {
		list = []model.ModelConfig{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": list})
}

func (h *ModelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d service.ModelDraft
	if !decode(w, r, &d) {
		return
	}
	id, err := h.Service.Create(r.Context(), d)
	if err != nil {
		fail(w, h.Logger, "CreateModel", err, "Failed to create model")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Model configuration created successfully", "model_id": id})
}

func (h *ModelHandler) Load(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Load(r.Context(), id); err != nil {
		fail(w, h.Logger, "LoadModel", err, "Failed to load model")
		return
	}
	h.Logger.Infow("model loaded", "model_id", id)
	writeMessage(w, http.StatusOK, "Model loaded successfully")
}

func (h *ModelHandler) Assign(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	var a service.Assignment
	if !decode(w, r, &a) {
		return
	}
	if err := h.Service.Assign(r.Context(), scope, a); err != nil {
		fail(w, h.Logger, "AssignModel", err, "Failed to assign model")
		return
	}
	writeMessage(w, http.StatusOK, "Model assigned to "+scope+" successfully")
}
