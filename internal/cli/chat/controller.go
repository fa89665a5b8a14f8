// Package chat управляет диалогом с ассистентом: отправка запроса, транскрипт и история.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/lifetime"
	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/mutation"
	"PolicyDesk/internal/cli/session"
	"PolicyDesk/internal/cli/status"
)

// Отправители сообщений транскрипта.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

const (
	noAnswer      = "No answer returned."
	unknownSource = "Unknown"
)

var (
	ErrEmptyInput = errors.New("message is empty")
	ErrNotReady   = errors.New("system is not ready")
	ErrBusy       = errors.New("a message is already being sent")
)

// Scope определяет, к чему адресован чат.
type Scope int

const (
	// ScopeModel — экран администратора: запрос несёт model_id, атрибуция по source_model.
	ScopeModel Scope = iota
	// ScopeCollection — экран сотрудника: запрос несёт collection_id, атрибуция по source_collection.
	ScopeCollection
)

// Message — строка транскрипта.
type Message struct {
	ID        string
	Text      string
	Sender    string
	Source    string
	Documents []model.SourceDocument
}

// Target — модель или коллекция, доступная для выбора.
type Target struct {
	ID   int64
	Name string
}

// Client — часть api.Client, нужная чату.
type Client interface {
	Chat(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error)
	History(ctx context.Context, userID int64) (model.HistoryList, error)
	DeleteHistory(ctx context.Context, userID, id int64) error
	Models(ctx context.Context, userID int64) ([]model.ModelConfig, error)
	Collections(ctx context.Context, userID int64) ([]model.Collection, error)
}

// Config — зависимости контроллера.
type Config struct {
	Client   Client
	User     session.Identity
	Scope    Scope
	Ready    func() bool
	Logger   *zap.SugaredLogger
	Lifetime *lifetime.Scope
	Observer mutation.Observer
}

// Controller — состояние одного экрана чата. Методы безопасны для конкурентного вызова.
type Controller struct {
	cfg Config

	mu         sync.Mutex
	transcript []Message
	history    []model.HistoryEntry
	selected   *model.HistoryEntry
	sending    bool
	targets    []Target
	target     int64
	durations  map[string]string

	bg sync.WaitGroup
}

// New создаёт контроллер. Без Lifetime контроллер живёт до отмены context.Background.
func New(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Lifetime == nil {
		cfg.Lifetime = lifetime.New(context.Background())
	}
	if cfg.Ready == nil {
		cfg.Ready = func() bool { return true }
	}
	return &Controller{cfg: cfg, durations: make(map[string]string)}
}

// apply обновляет состояние, только если экран ещё жив.
func (c *Controller) apply(fn func()) bool {
	return c.cfg.Lifetime.Apply(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		fn()
	})
}

// Send проводит один ход диалога. Охранные условия возвращают ошибку без побочных эффектов.
// Ошибка запроса превращается в сообщение ассистента "Error: ..." и возвращается как nil:
// ход завершён, а не отклонён. Возвращается последнее добавленное сообщение ассистента.
func (c *Controller) Send(ctx context.Context, input string) (Message, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return Message{}, ErrEmptyInput
	}
	if !c.cfg.Ready() {
		return Message{}, ErrNotReady
	}
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return Message{}, ErrBusy
	}
	c.sending = true
	target := c.target
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	var (
		resp  model.ChatResponse
		reply Message
	)
	cmd := &mutation.Command{
		Name:     "chat.send",
		Observer: c.cfg.Observer,
		Optimistic: func() {
			c.apply(func() {
				c.transcript = append(c.transcript, Message{ID: uuid.NewString(), Text: text, Sender: SenderUser})
			})
		},
		Do: func(ctx context.Context) error {
			var err error
			resp, err = c.cfg.Client.Chat(ctx, c.request(text, target))
			return err
		},
		Commit: func() {
			reply = c.answer(resp)
			c.apply(func() {
				c.transcript = append(c.transcript, reply)
				if resp.DurationS > 0 {
					c.durations["chat"] = status.FormatDuration(resp.DurationS)
				}
			})
		},
		Rollback: func(err error) {
			reply = Message{ID: uuid.NewString(), Text: errorText(err), Sender: SenderAI}
			c.apply(func() { c.transcript = append(c.transcript, reply) })
		},
	}
	if err := cmd.Run(ctx); err != nil {
		c.cfg.Logger.Debugw("chat request failed", "user", c.cfg.User.Username, "error", err)
		return reply, nil
	}

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		if err := c.RefreshHistory(c.cfg.Lifetime.Context()); err != nil {
			c.cfg.Logger.Debugw("history refetch after chat failed", "error", err)
		}
	}()
	return reply, nil
}

func (c *Controller) request(text string, target int64) model.ChatRequest {
	req := model.ChatRequest{Query: text, UserID: c.cfg.User.ID}
	if target != 0 {
		id := target
		if c.cfg.Scope == ScopeModel {
			req.ModelID = &id
		} else {
			req.CollectionID = &id
		}
	}
	return req
}

func (c *Controller) answer(resp model.ChatResponse) Message {
	answer := resp.Answer
	if answer == "" {
		answer = noAnswer
	}
	msg := Message{ID: uuid.NewString(), Sender: SenderAI, Documents: resp.SourceDocuments}
	switch c.cfg.Scope {
	case ScopeModel:
		msg.Source = resp.SourceModel
		if msg.Source != "" {
			answer += "\n\n*Source: " + msg.Source + "*"
		}
	default:
		msg.Source = resp.SourceCollection
		src := msg.Source
		if src == "" {
			src = unknownSource
		}
		answer += "\n\n*Source: " + src + "*"
	}
	msg.Text = answer
	return msg
}

func errorText(err error) string {
	msg := api.Describe(err, "Failed to get response")
	if strings.HasPrefix(msg, "Error: ") {
		return msg
	}
	return "Error: " + msg
}

// Wait ждёт фоновые перезапросы истории, запущенные Send.
func (c *Controller) Wait() { c.bg.Wait() }

// Transcript возвращает копию транскрипта.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Sending сообщает, идёт ли отправка.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// RefreshHistory загружает историю пользователя и целиком заменяет локальный список.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	list, err := c.cfg.Client.History(ctx, c.cfg.User.ID)
	if err != nil {
		return err
	}
	c.apply(func() {
		c.history = list.History
		if list.DurationS > 0 {
			c.durations["history"] = status.FormatDuration(list.DurationS)
		}
	})
	return nil
}

// History возвращает копию списка истории.
func (c *Controller) History() []model.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// Select открывает детальный просмотр записи истории.
func (c *Controller) Select(id int64) bool {
	found := false
	c.apply(func() {
		for i := range c.history {
			if c.history[i].ID == id {
				e := c.history[i]
				c.selected = &e
				found = true
				return
			}
		}
	})
	return found
}

// Selected возвращает открытую запись истории.
func (c *Controller) Selected() (model.HistoryEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return model.HistoryEntry{}, false
	}
	return *c.selected, true
}

// CloseDetail закрывает детальный просмотр.
func (c *Controller) CloseDetail() {
	c.apply(func() { c.selected = nil })
}

// DeleteHistory удаляет запись после подтверждения сервером.
// При ошибке список не меняется, ошибка возвращается вызывающему.
func (c *Controller) DeleteHistory(ctx context.Context, id int64) error {
	cmd := &mutation.Command{
		Name:     "chat.history.delete",
		Observer: c.cfg.Observer,
		Do: func(ctx context.Context) error {
			return c.cfg.Client.DeleteHistory(ctx, c.cfg.User.ID, id)
		},
		Commit: func() {
			c.apply(func() {
				kept := c.history[:0:0]
				for _, e := range c.history {
					if e.ID != id {
						kept = append(kept, e)
					}
				}
				c.history = kept
				if c.selected != nil && c.selected.ID == id {
					c.selected = nil
				}
			})
		},
	}
	return cmd.Run(ctx)
}

// LoadTargets загружает модели (администратор) или коллекции (сотрудник)
// и выбирает первую, если выбора ещё нет.
func (c *Controller) LoadTargets(ctx context.Context) error {
	var targets []Target
	if c.cfg.Scope == ScopeModel {
		models, err := c.cfg.Client.Models(ctx, c.cfg.User.ID)
		if err != nil {
			return err
		}
		for _, m := range models {
			targets = append(targets, Target{ID: m.ID, Name: m.Name})
		}
	} else {
		cols, err := c.cfg.Client.Collections(ctx, c.cfg.User.ID)
		if err != nil {
			return err
		}
		for _, col := range cols {
			targets = append(targets, Target{ID: col.ID, Name: col.Name})
		}
	}
	c.apply(func() {
		c.targets = targets
		if c.target == 0 && len(targets) > 0 {
			c.target = targets[0].ID
		}
	})
	return nil
}

// Targets возвращает загруженные цели.
func (c *Controller) Targets() []Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Target, len(c.targets))
	copy(out, c.targets)
	return out
}

// SetTarget выбирает модель или коллекцию.
func (c *Controller) SetTarget(id int64) {
	c.apply(func() { c.target = id })
}

// Target возвращает выбранную цель (0 — нет выбора).
func (c *Controller) Target() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// LastDuration — длительность последнего ответа чата, например "2.50 s".
func (c *Controller) LastDuration() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.durations["chat"]
}

// HistoryDuration — длительность последней загрузки истории.
func (c *Controller) HistoryDuration() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.durations["history"]
}
