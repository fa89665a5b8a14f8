package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"unicode"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/repo"

	"go.uber.org/zap"
)

const (
	// NoData - ответ, когда в документах нет подходящего фрагмента.
	NoData = "This Data is not available"

	topChunks       = 3
	sourcePreview   = 200
	userHistoryMax  = 50
	adminHistoryMax = 100
)

// ChatRequest - тело /api/chat.
type ChatRequest struct {
	Query        string `json:"query"`
	UserID       int64  `json:"user_id"`
	ModelID      *int64 `json:"model_id,omitempty"`
	CollectionID *int64 `json:"collection_id,omitempty"`
}

// SourceDocument - фрагмент, на который опирается ответ.
type SourceDocument struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ChatAnswer - ответ /api/chat без длительности.
type ChatAnswer struct {
	Answer           string           `json:"answer"`
	SourceModel      string           `json:"source_model,omitempty"`
	SourceCollection string           `json:"source_collection,omitempty"`
	SourceDocuments  []SourceDocument `json:"source_documents"`
}

// HistoryView - запись истории в ответе.
type HistoryView struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"user_id"`
	Username        string           `json:"username,omitempty"`
	UserMessage     string           `json:"user_message"`
	AIResponse      string           `json:"ai_response"`
	CollectionName  string           `json:"document_collection_name,omitempty"`
	ModelName       string           `json:"model_name,omitempty"`
	SourceDocuments []SourceDocument `json:"source_documents,omitempty"`
	Timestamp       string           `json:"timestamp"`
}

// ChatService - ответы по документам и история диалогов.
type ChatService struct {
	access
	docs    repo.DocumentRepository
	history repo.HistoryRepository
	logger  *zap.SugaredLogger
}

func NewChatService(dir repo.DirectoryRepository, models repo.ModelRepository, docs repo.DocumentRepository, history repo.HistoryRepository, logger *zap.SugaredLogger) *ChatService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ChatService{access: access{dir: dir, models: models}, docs: docs, history: history, logger: logger}
}

// target - выбранная для запроса коллекция и (если есть) модель.
type target struct {
	model      *model.ModelConfig
	collection *model.Collection
}

// resolve выбирает модель и коллекцию: явная модель, явная коллекция
// или первая доступная модель с привязанной коллекцией.
func (s *ChatService) resolve(ctx context.Context, u *model.User, req ChatRequest) (target, error) {
	modelIDs, err := s.modelIDs(ctx, u)
	if err != nil {
		return target{}, err
	}
	if req.ModelID != nil {
		if modelIDs != nil && !contains(modelIDs, *req.ModelID) {
			return target{}, badRequest("Invalid model ID")
		}
		m, err := s.models.ModelByID(ctx, *req.ModelID)
		if errors.Is(err, repo.ErrNotFound) {
			return target{}, badRequest("Invalid model ID")
		}
		if err != nil {
			return target{}, err
		}
		t := target{model: m}
		if m.CollectionID != nil {
			if t.collection, err = s.collection(ctx, *m.CollectionID); err != nil {
				return target{}, err
			}
		}
		return t, nil
	}
	if req.CollectionID != nil {
		collIDs, err := s.collectionIDs(ctx, u)
		if err != nil {
			return target{}, err
		}
		if collIDs != nil && !contains(collIDs, *req.CollectionID) {
			return target{}, forbidden("No accessible documents found")
		}
		c, err := s.collection(ctx, *req.CollectionID)
		if err != nil {
			return target{}, err
		}
		return target{collection: c}, nil
	}

	models, err := s.models.Models(ctx, modelIDs)
	if err != nil {
		return target{}, err
	}
	for i := range models {
		if models[i].CollectionID == nil {
			continue
		}
		c, err := s.collection(ctx, *models[i].CollectionID)
		if err != nil {
			return target{}, err
		}
		if c != nil {
			return target{model: &models[i], collection: c}, nil
		}
	}
	return target{}, forbidden("No accessible documents found")
}

func (s *ChatService) collection(ctx context.Context, id int64) (*model.Collection, error) {
	c, err := s.docs.CollectionByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// Ask отвечает на запрос по фрагментам коллекции и записывает диалог в историю.
func (s *ChatService) Ask(ctx context.Context, req ChatRequest) (ChatAnswer, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" || req.UserID == 0 {
		return ChatAnswer{}, badRequest("Query and user ID required")
	}
	u, ok, err := s.user(ctx, req.UserID)
	if err != nil {
		return ChatAnswer{}, err
	}
	if !ok {
		return ChatAnswer{}, notFound("User not found")
	}
	t, err := s.resolve(ctx, u, req)
	if err != nil {
		return ChatAnswer{}, err
	}

	ans := ChatAnswer{Answer: NoData, SourceDocuments: []SourceDocument{}}
	rec := &model.ChatHistory{UserID: u.ID, UserMessage: req.Query}
	if t.model != nil {
		ans.SourceModel = t.model.Name
		rec.ModelID, rec.ModelName = &t.model.ID, t.model.Name
	}
	if t.collection != nil {
		ans.SourceCollection = t.collection.Name
		rec.CollectionID, rec.CollectionName = &t.collection.ID, t.collection.Name
		hits := Retrieve(req.Query, t.collection.Files, topChunks)
		if len(hits) > 0 {
			ans.Answer = hits[0].Content
			for _, h := range hits {
				ans.SourceDocuments = append(ans.SourceDocuments, SourceDocument{
					Content:  preview(h.Content, sourcePreview),
					Metadata: map[string]string{"source": h.Source},
				})
			}
		}
	}

	rec.AIResponse = ans.Answer
	if raw, err := json.Marshal(ans.SourceDocuments); err == nil {
		rec.SourceDocuments = string(raw)
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.logger.Warnw("chat history not saved", "user_id", u.ID, "error", err)
	}
	return ans, nil
}

// Hit - фрагмент документа с оценкой совпадения.
type Hit struct {
	Content string
	Source  string
	Score   int
}

// Retrieve режет файлы на фрагменты и возвращает до limit фрагментов с наибольшим
// числом вхождений слов запроса. Фрагменты без совпадений не возвращаются.
func Retrieve(query string, files []model.CollectionFile, limit int) []Hit {
	terms := keywords(query)
	if len(terms) == 0 {
		return nil
	}
	var hits []Hit
	for _, f := range files {
		for _, c := range Chunk(f.Content, ChunkSize, ChunkOverlap) {
			lower := strings.ToLower(c)
			score := 0
			for _, term := range terms {
				score += strings.Count(lower, term)
			}
			if score > 0 {
				hits = append(hits, Hit{Content: c, Source: f.Name, Score: score})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// keywords - слова запроса длиной от трёх символов, в нижнем регистре, без повторов.
func keywords(q string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(w)) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func historyView(h model.ChatHistory) HistoryView {
	v := HistoryView{
		ID:             h.ID,
		UserID:         h.UserID,
		Username:       h.Username,
		UserMessage:    h.UserMessage,
		AIResponse:     h.AIResponse,
		CollectionName: h.CollectionName,
		ModelName:      h.ModelName,
		Timestamp:      h.Timestamp.Format(model.HistoryTimeLayout),
	}
	if h.SourceDocuments != "" {
		_ = json.Unmarshal([]byte(h.SourceDocuments), &v.SourceDocuments)
	}
	return v
}

func historyViews(list []model.ChatHistory) []HistoryView {
	out := make([]HistoryView, 0, len(list))
	for _, h := range list {
		out = append(out, historyView(h))
	}
	return out
}

// History - история пользователя без скрытых им записей, либо вся история для администратора.
func (s *ChatService) History(ctx context.Context, userID int64, all bool) ([]HistoryView, error) {
	if all {
		list, err := s.history.All(ctx, adminHistoryMax)
		return historyViews(list), err
	}
	if userID == 0 {
		return nil, badRequest("User ID required")
	}
	list, err := s.history.ForUser(ctx, userID, userHistoryMax)
	return historyViews(list), err
}

// UserHistory - история пользователя для экрана администратора.
func (s *ChatService) UserHistory(ctx context.Context, userID int64) ([]HistoryView, error) {
	u, ok, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("User not found")
	}
	list, err := s.history.ForUser(ctx, userID, adminHistoryMax)
	if err != nil {
		return nil, err
	}
	views := historyViews(list)
	for i := range views {
		views[i].Username = u.Username
	}
	return views, nil
}

// DeleteHistory: администратор удаляет запись, пользователь только скрывает свою.
func (s *ChatService) DeleteHistory(ctx context.Context, userID, id int64, asAdmin bool) error {
	if !asAdmin && userID != 0 {
		u, ok, err := s.user(ctx, userID)
		if err != nil {
			return err
		}
		asAdmin = ok && u.Role == model.RoleAdmin
	}
	var err error
	if asAdmin {
		err = s.history.Delete(ctx, id)
	} else {
		err = s.history.HideForUser(ctx, id, userID)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("History entry not found")
	}
	if err != nil {
		return badRequest("Failed to delete history: %v", err)
	}
	return nil
}
