package model

// Статусы загрузки конфигурации модели.
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
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	ModelPath        string  `json:"model_path"`
	EmbedModelPath   string  `json:"embed_model_path,omitempty"`
	StoragePath      string  `json:"chroma_db_base_path"`
	CollectionID     int64   `json:"collection_id,omitempty"`
	MaxContextTokens int     `json:"max_context_tokens"`
	MaxNewTokens     int     `json:"max_new_tokens,omitempty"`
	Threads          int     `json:"threads"`
	Temperature      float64 `json:"temperature"`
	Prompt           string  `json:"prompt"`
	ModelType        string  `json:"model_type,omitempty"`
	Status           string  `json:"status"`
}

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

// Assignment - назначение модели пользователю, подразделению или грейду.
// Заполняется ровно одно из UserID/DepartmentID/GradeID в зависимости от области.
type Assignment struct {
	UserID       int64 `json:"user_id,omitempty"`
	DepartmentID int64 `json:"department_id,omitempty"`
	GradeID      int64 `json:"grade_id,omitempty"`
	ModelID      int64 `json:"model_id"`
	AssignedBy   int64 `json:"assigned_by"`
	IsDefault    bool  `json:"is_default"`
}
