package panels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"PolicyDesk/internal/cli/model"
)

// FixedPrompt добавляется после пользовательского промпта каждой модели.
const FixedPrompt = `Use ONLY the context below to answer the query concisely and accurately.
If the context doesn't contain relevant information, respond: "This Data is not available"

Context: {context}

Query: {query}

Answer:`

// Значения формы создания модели по умолчанию.
const (
	DefaultModelPath     = "backend/sections/models/LLM-7B.gguf"
	DefaultEmbedModel    = "models/all-MiniLM-L6-v2"
	DefaultContextTokens = 4096
	DefaultThreads       = 8
	DefaultTemperature   = 0.7
	DefaultMaxNewTokens  = 256
	DefaultModelType     = "gguf"
)

// ModelsClient — часть api.Client для конфигураций моделей.
type ModelsClient interface {
	Models(ctx context.Context, userID int64) ([]model.ModelConfig, error)
	Collections(ctx context.Context, userID int64) ([]model.Collection, error)
	CreateModel(ctx context.Context, d model.ModelDraft) (int64, string, error)
	LoadModel(ctx context.Context, id int64) (string, error)
}

// ModelForm — поля формы создания модели.
type ModelForm struct {
	ModelPath    string
	CollectionID int64
	CustomPrompt string
	ContextSize  int
	Threads      int
	Temperature  float64
}

// DefaultModelForm возвращает форму со значениями по умолчанию.
func DefaultModelForm() ModelForm {
	return ModelForm{
		ModelPath:   DefaultModelPath,
		ContextSize: DefaultContextTokens,
		Threads:     DefaultThreads,
		Temperature: DefaultTemperature,
	}
}

// Models — экран моделей.
type Models struct {
	base
	client      ModelsClient
	userID      int64
	items       []model.ModelConfig
	collections []model.Collection

	now func() time.Time
}

func NewModels(client ModelsClient, userID int64, o Options) *Models {
	p := &Models{client: client, userID: userID, now: time.Now}
	p.init(o)
	return p
}

// Load загружает модели и коллекции.
func (p *Models) Load(ctx context.Context) error {
	var (
		models []model.ModelConfig
		cols   []model.Collection
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { models, err = p.client.Models(gCtx, 0); return })
	g.Go(func() (err error) { cols, err = p.client.Collections(gCtx, p.userID); return })
	if err := g.Wait(); err != nil {
		return err
	}
	p.apply(func() { p.items, p.collections = models, cols })
	return nil
}

func (p *Models) reloadModels(ctx context.Context) error {
	models, err := p.client.Models(ctx, 0)
	if err != nil {
		return err
	}
	p.apply(func() { p.items = models })
	return nil
}

// Items возвращает копию списка моделей.
func (p *Models) Items() []model.ModelConfig {
	var out []model.ModelConfig
	p.read(func() { out = append(out, p.items...) })
	return out
}

// Collections возвращает коллекции, доступные для привязки.
func (p *Models) Collections() []model.Collection {
	var out []model.Collection
	p.read(func() { out = append(out, p.collections...) })
	return out
}

// Draft собирает тело запроса из формы: проверяет обязательные поля
// и составляет промпт как пользовательский + "\n\n" + FixedPrompt.
func (p *Models) Draft(f ModelForm) (model.ModelDraft, error) {
	if strings.TrimSpace(f.ModelPath) == "" {
		return model.ModelDraft{}, invalid("model_path", "Please enter the path to your GGUF model.")
	}
	if f.CollectionID == 0 {
		return model.ModelDraft{}, invalid("collection", "Please select a collection.")
	}
	if strings.TrimSpace(f.CustomPrompt) == "" {
		return model.ModelDraft{}, invalid("prompt", "Please provide a custom prompt.")
	}
	var (
		coll  model.Collection
		found bool
	)
	p.read(func() {
		for _, c := range p.collections {
			if c.ID == f.CollectionID {
				coll, found = c, true
				return
			}
		}
	})
	if !found {
		return model.ModelDraft{}, invalid("collection", "Error: Selected collection not found")
	}
	if f.ContextSize <= 0 {
		f.ContextSize = DefaultContextTokens
	}
	if f.Threads <= 0 {
		f.Threads = DefaultThreads
	}
	return model.ModelDraft{
		UserID:           p.userID,
		Name:             fmt.Sprintf("Model-%d", p.now().UnixMilli()),
		ModelPath:        f.ModelPath,
		EmbedModelPath:   DefaultEmbedModel,
		StoragePath:      coll.StoragePath,
		CollectionID:     coll.ID,
		MaxContextTokens: f.ContextSize,
		MaxNewTokens:     DefaultMaxNewTokens,
		Threads:          f.Threads,
		Temperature:      f.Temperature,
		Prompt:           f.CustomPrompt + "\n\n" + FixedPrompt,
		ModelType:        DefaultModelType,
	}, nil
}

// Create создаёт конфигурацию модели и перезагружает список.
// Возвращает сообщение для строки статуса формы.
func (p *Models) Create(ctx context.Context, f ModelForm) (string, error) {
	d, err := p.Draft(f)
	if err != nil {
		return "", err
	}
	var msg string
	err = p.run(ctx, "models.create", func(ctx context.Context) error {
		var err error
		_, msg, err = p.client.CreateModel(ctx, d)
		return err
	}, nil)
	if err != nil {
		return "", err
	}
	return "Model configuration created: " + msg, p.reloadModels(ctx)
}

// LoadModel запускает загрузку модели. При успехе модель локально помечается Loaded;
// статус не опрашивается.
func (p *Models) LoadModel(ctx context.Context, id int64) (string, error) {
	var msg string
	err := p.run(ctx, "models.load", func(ctx context.Context) error {
		var err error
		msg, err = p.client.LoadModel(ctx, id)
		return err
	}, func() {
		p.apply(func() {
			for i := range p.items {
				if p.items[i].ID == id {
					p.items[i].Status = model.ModelLoaded
				}
			}
		})
	})
	return msg, err
}

// StatusOf возвращает статус модели; пустой статус считается Not Loaded.
func StatusOf(m model.ModelConfig) string {
	if m.Status == "" {
		return model.ModelNotLoaded
	}
	return m.Status
}
