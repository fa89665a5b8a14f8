// Package panels — CRUD-экраны администратора поверх api.Client.
// Каждый экран загружает список целиком, изменения отправляет на сервер
// и после успеха перезагружает список. Конкурентные загрузки не дедуплицируются:
// побеждает последний ответ.
package panels

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/lifetime"
	"PolicyDesk/internal/cli/mutation"
)

// ErrNotConfirmed — пользователь отказался от удаления; запрос не отправлялся.
var ErrNotConfirmed = errors.New("cancelled")

// ValidationError — обязательное поле не заполнено; запрос не отправлялся.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// IsValidation сообщает, что err — ошибка валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Message рендерит уведомление для пользователя.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, ErrNotConfirmed):
		return ""
	case errors.Is(err, ErrGradeInUse):
		return ErrGradeInUse.Error()
	default:
		return api.Describe(err, fallback)
	}
}

// Confirmer спрашивает подтверждение деструктивного действия.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc адаптирует функцию к Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm подтверждает всё (флаг --yes).
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// Options — общие зависимости экранов.
type Options struct {
	Lifetime  *lifetime.Scope
	Confirmer Confirmer
	Observer  mutation.Observer
	Logger    *zap.SugaredLogger
}

// base — общее ядро экрана: жизненный цикл, блокировка состояния и подтверждения.
type base struct {
	scope    *lifetime.Scope
	confirm  Confirmer
	observer mutation.Observer
	logger   *zap.SugaredLogger

	mu sync.Mutex
}

func (b *base) init(o Options) {
	b.scope, b.confirm, b.observer, b.logger = o.Lifetime, o.Confirmer, o.Observer, o.Logger
	if b.scope == nil {
		b.scope = lifetime.New(context.Background())
	}
	if b.confirm == nil {
		b.confirm = AlwaysConfirm
	}
	if b.logger == nil {
		b.logger = zap.NewNop().Sugar()
	}
}

// apply обновляет состояние, только если экран жив.
func (b *base) apply(fn func()) bool {
	return b.scope.Apply(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		fn()
	})
}

func (b *base) read(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

func (b *base) confirmed(prompt string) error {
	if !b.confirm.Confirm(prompt) {
		return ErrNotConfirmed
	}
	return nil
}

// run выполняет изменение как mutation.Command.
func (b *base) run(ctx context.Context, name string, do func(context.Context) error, commit func()) error {
	cmd := &mutation.Command{Name: name, Do: do, Commit: commit, Observer: b.observer}
	return cmd.Run(ctx)
}

// Activity — запись ленты недавних действий.
type Activity struct {
	ID    string
	Label string
}

const recentMax = 5

// pushRecent добавляет запись в начало ленты, сохраняя не более recentMax записей.
func pushRecent(list []Activity, a Activity) []Activity {
	out := append([]Activity{a}, list...)
	if len(out) > recentMax {
		out = out[:recentMax]
	}
	return out
}
