package model

import "time"

// Статусы загрузки модели.
const (
	ModelLoaded    = "Loaded"
	ModelNotLoaded = "Not Loaded"
)

// Области назначения модели.
const (
	ScopeUser       = "user"
	ScopeDepartment = "department"
	ScopeGrade      = "grade"
)

// ModelConfig - конфигурация модели инференса.
type ModelConfig struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null;uniqueIndex" json:"name"`
	ModelPath        string    `gorm:"not null" json:"model_path"`
	EmbedModelPath   string    `gorm:"not null" json:"embed_model_path"`
	StoragePath      string    `gorm:"not null" json:"chroma_db_base_path"`
	CollectionID     *int64    `json:"collection_id,omitempty"`
	MaxContextTokens int       `gorm:"not null" json:"max_context_tokens"`
	MaxNewTokens     int       `gorm:"not null" json:"max_new_tokens"`
	Threads          int       `gorm:"default:8" json:"threads"`
	Temperature      float64   `gorm:"default:0.7" json:"temperature"`
	Prompt           string    `gorm:"type:text" json:"prompt"`
	ModelType        string    `gorm:"default:gguf" json:"model_type"`
	Status           string    `gorm:"not null;default:'Not Loaded'" json:"status"`
	CreatedBy        *int64    `json:"created_by,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ModelAssignment - назначение модели пользователю, подразделению или грейду.
// Тройка (scope, target_id, model_id) уникальна.
type ModelAssignment struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Scope      string    `gorm:"not null;uniqueIndex:idx_assignment" json:"scope"`
	TargetID   int64     `gorm:"not null;uniqueIndex:idx_assignment" json:"target_id"`
	ModelID    int64     `gorm:"not null;uniqueIndex:idx_assignment" json:"model_id"`
	IsDefault  bool      `gorm:"not null;default:false" json:"is_default"`
	AssignedBy *int64    `json:"assigned_by,omitempty"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	Model *ModelConfig `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
