package model

// Collection - именованная группа загруженных документов.
type Collection struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	StoragePath string   `json:"chroma_db_path"`
	CreatedBy   int64    `json:"created_by,omitempty"`
	Files       []string `json:"files"`
}

// UploadResult - ответ /api/upload.
type UploadResult struct {
	Message        string `json:"message"`
	CollectionName string `json:"collection_name"`
}
