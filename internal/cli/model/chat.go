package model

// Status - флаги готовности из /api/status.
type Status struct {
	DBReady     bool    `json:"db_ready"`
	ModelLoaded bool    `json:"model_loaded"`
	Ready       bool    `json:"ready"`
	DurationS   float64 `json:"duration_s,omitempty"`
}

// HistoryEntry - запись истории чата.
type HistoryEntry struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	Username       string `json:"username,omitempty"`
	UserMessage    string `json:"user_message"`
	AIResponse     string `json:"ai_response"`
	CollectionName string `json:"document_collection_name,omitempty"`
	ModelName      string `json:"model_name,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// Source возвращает атрибуцию ответа: модель, если указана, иначе коллекцию.
func (h HistoryEntry) Source() string {
	if h.ModelName != "" {
		return h.ModelName
	}
	return h.CollectionName
}

// ChatRequest - тело /api/chat.
type ChatRequest struct {
	Query        string `json:"query"`
	UserID       int64  `json:"user_id"`
	ModelID      *int64 `json:"model_id,omitempty"`
	CollectionID *int64 `json:"collection_id,omitempty"`
}

// SourceDocument - фрагмент документа, на который опирается ответ.
type SourceDocument struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ChatResponse - ответ /api/chat.
type ChatResponse struct {
	Answer           string           `json:"answer"`
	SourceModel      string           `json:"source_model,omitempty"`
	SourceCollection string           `json:"source_collection,omitempty"`
	SourceDocuments  []SourceDocument `json:"source_documents,omitempty"`
	DurationS        float64          `json:"duration_s,omitempty"`
}

// HistoryList - ответ /api/history.
type HistoryList struct {
	History   []HistoryEntry `json:"history"`
	DurationS float64        `json:"duration_s,omitempty"`
}
