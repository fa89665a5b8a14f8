package service

import (
	"context"
	"errors"
	"strings"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/repo"

	"go.uber.org/zap"
)

// ModelDraft - тело /api/models/create.
type ModelDraft struct {
	UserID           int64   `json:"user_id"`
	Name             string  `json:"name"`
	ModelPath        string  `json:"model_path"`
	EmbedModelPath   string  `json:"embed_model_path"`
	StoragePath      string  `json:"chroma_db_base_path"`
	CollectionID     int64   `json:"collection_id"`
	MaxContextTokens int     `json:"max_context_tokens"`
	MaxNewTokens     int     `json:"max_new_tokens"`
	Threads          int     `json:"threads"`
	Temperature      float64 `json:"temperature"`
	Prompt           string  `json:"prompt"`
	ModelType        string  `json:"model_type"`
}

// Assignment - тело /api/models/assign/{scope}; цель берётся из поля своей области.
type Assignment struct {
	UserID       int64 `json:"user_id"`
	DepartmentID int64 `json:"department_id"`
	GradeID      int64 `json:"grade_id"`
	ModelID      int64 `json:"model_id"`
	AssignedBy   int64 `json:"assigned_by"`
	IsDefault    bool  `json:"is_default"`
}

// ModelService - конфигурации моделей, загрузка и назначения.
type ModelService struct {
	access
	logger *zap.SugaredLogger
}

func NewModelService(dir repo.DirectoryRepository, models repo.ModelRepository, logger *zap.SugaredLogger) *ModelService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ModelService{access: access{dir: dir, models: models}, logger: logger}
}

// List возвращает все модели; для userID > 0 (не администратора) - только назначенные.
func (s *ModelService) List(ctx context.Context, userID int64) ([]model.ModelConfig, error) {
	var ids []int64
	if userID > 0 {
		u, ok, err := s.user(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, notFound("User not found")
		}
		if ids, err = s.modelIDs(ctx, u); err != nil {
			return nil, err
		}
	}
	return s.models.Models(ctx, ids)
}

// Create сохраняет конфигурацию в статусе Not Loaded.
func (s *ModelService) Create(ctx context.Context, d ModelDraft) (int64, error) {
	d.Name = strings.TrimSpace(d.Name)
	switch {
	case d.Name == "":
		return 0, badRequest("Model name is required")
	case strings.TrimSpace(d.ModelPath) == "":
		return 0, badRequest("Model path is required")
	case strings.TrimSpace(d.EmbedModelPath) == "":
		return 0, badRequest("Embedding model path is required")
	case strings.TrimSpace(d.StoragePath) == "":
		return 0, badRequest("Chroma DB base path is required")
	}
	taken, err := s.models.NameTaken(ctx, d.Name)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, badRequest("Model name already exists")
	}
	m := &model.ModelConfig{
		Name:             d.Name,
		ModelPath:        d.ModelPath,
		EmbedModelPath:   d.EmbedModelPath,
		StoragePath:      d.StoragePath,
		MaxContextTokens: d.MaxContextTokens,
		MaxNewTokens:     d.MaxNewTokens,
		Threads:          d.Threads,
		Temperature:      d.Temperature,
		Prompt:           d.Prompt,
		ModelType:        d.ModelType,
		Status:           model.ModelNotLoaded,
	}
	if d.CollectionID != 0 {
		m.CollectionID = &d.CollectionID
	}
	if d.UserID != 0 {
		m.CreatedBy = &d.UserID
	}
	if m.MaxContextTokens <= 0 {
		m.MaxContextTokens = 4096
	}
	if m.MaxNewTokens <= 0 {
		m.MaxNewTokens = 256
	}
	if m.ModelType == "" {
		m.ModelType = "gguf"
	}
	if err := s.models.CreateModel(ctx, m); err != nil {
		return 0, badRequest("Failed to create model: %v", err)
	}
	s.logger.Infow("model configuration created", "model_id", m.ID, "name", m.Name)
	return m.ID, nil
}

// Load помечает модель загруженной. Инференса в dev-сервере нет.
func (s *ModelService) Load(ctx context.Context, id int64) error {
	err := s.models.SetStatus(ctx, id, model.ModelLoaded)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Model configuration not found")
	}
	return err
}

var scopeLabels = map[string]string{
	model.ScopeUser:       "User",
	model.ScopeDepartment: "Department",
	model.ScopeGrade:      "Grade",
}

// Assign назначает модель пользователю, подразделению или грейду.
func (s *ModelService) Assign(ctx context.Context, scope string, a Assignment) error {
	label, ok := scopeLabels[scope]
	if !ok {
		return notFound("Unknown assignment scope")
	}
	var target int64
	switch scope {
	case model.ScopeUser:
		target = a.UserID
	case model.ScopeDepartment:
		target = a.DepartmentID
	case model.ScopeGrade:
		target = a.GradeID
	}
	if target == 0 || a.ModelID == 0 {
		return badRequest("%s ID and Model ID are required", label)
	}

	var err error
	switch scope {
	case model.ScopeUser:
		_, err = s.dir.UserByID(ctx, target)
	case model.ScopeDepartment:
		_, err = s.dir.DepartmentByID(ctx, target)
	case model.ScopeGrade:
		_, err = s.dir.GradeByID(ctx, target)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("%s not found", label)
	}
	if err != nil {
		return err
	}
	if _, err := s.models.ModelByID(ctx, a.ModelID); errors.Is(err, repo.ErrNotFound) {
		return notFound("Model not found")
	} else if err != nil {
		return err
	}

	rec := &model.ModelAssignment{Scope: scope, TargetID: target, ModelID: a.ModelID, IsDefault: a.IsDefault}
	if a.AssignedBy != 0 {
		rec.AssignedBy = &a.AssignedBy
	}
	if err := s.models.Assign(ctx, rec); err != nil {
		return badRequest("Failed to assign model: %v", err)
	}
	return nil
}
