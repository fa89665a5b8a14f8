package commands

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/bootstrap"
	"PolicyDesk/internal/cli/panels"
	"PolicyDesk/internal/cli/router"
	"PolicyDesk/internal/cli/session"
	"PolicyDesk/internal/cli/shell"
	"PolicyDesk/internal/config"
)

// Env — зависимости, которые dispatcher передаёт командам.
type Env struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	API     *api.Client
	Session *session.Session
	// View — экран, на который dispatcher разрешил маршрут команды.
	View router.View

	inOnce sync.Once
	in     *bufio.Reader
}

// NewEnv открывает хранилище сессии и собирает API-клиент по cfg.
// cleanup закрывает хранилище.
func NewEnv(cfg *config.Config, logger *zap.SugaredLogger) (*Env, func() error, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	store, cleanup, err := bootstrap.OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.Open(store, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	client := api.New(cfg.APIBase, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger))
	return &Env{Config: cfg, Logger: logger, API: client, Session: sess}, cleanup, nil
}

// Identity возвращает текущего пользователя или nil.
func (e *Env) Identity() *session.Identity {
	id, ok := e.Session.Current()
	if !ok {
		return nil
	}
	return &id
}

// User возвращает текущего пользователя; dispatcher гарантирует его наличие для защищённых команд.
func (e *Env) User() session.Identity {
	id, _ := e.Session.Current()
	return id
}

func (e *Env) reader() *bufio.Reader {
	e.inOnce.Do(func() { e.in = bufio.NewReader(In) })
	return e.in
}

// ReadLine читает строку ввода без завершающего перевода строки.
func (e *Env) ReadLine() (string, error) {
	line, err := e.reader().ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirmer спрашивает y/N на In; с --yes подтверждает всё.
func (e *Env) Confirmer() panels.Confirmer {
	if e.Config != nil && e.Config.AssumeYes {
		return panels.AlwaysConfirm
	}
	return panels.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(Out, "%s [y/N]: ", prompt)
		line, err := e.ReadLine()
		if err != nil {
			fmt.Fprintln(Out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

// ShellConfig собирает конфигурацию оболочек из окружения.
func (e *Env) ShellConfig() shell.Config {
	sc := shell.Config{
		API:       e.API,
		Session:   e.Session,
		User:      e.User(),
		Confirmer: e.Confirmer(),
		Logger:    e.Logger,
	}
	if e.Config != nil {
		sc.ShellInterval = e.Config.ShellPollInterval
		sc.ChatInterval = e.Config.ChatPollInterval
	}
	return sc
}

// panelOptions — опции одиночного экрана для неинтерактивной команды.
func (e *Env) panelOptions() panels.Options {
	return panels.Options{Confirmer: e.Confirmer(), Logger: e.Logger}
}
