package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/repo/memory"
	"PolicyDesk/internal/cli/session"
	"PolicyDesk/internal/config"
)

type fakeCmd struct {
	name  string
	path  string
	err   error
	calls int
	args  []string
	env   *Env
}

func (f *fakeCmd) Name() string        { return f.name }
func (f *fakeCmd) Description() string { return "fake" }
func (f *fakeCmd) Usage() string       { return f.name + " <x>" }
func (f *fakeCmd) Path() string        { return f.path }
func (f *fakeCmd) Run(_ context.Context, env *Env, args []string) error {
	f.calls++
	f.args = args
	f.env = env
	return f.err
}

// registerFake регистрирует команду на время теста.
func registerFake(t *testing.T, c *fakeCmd) {
	t.Helper()
	RegisterCmd(c)
	t.Cleanup(func() { delete(registry, c.name) })
}

func withStdoutCapture(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := Out
	buf := &bytes.Buffer{}
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}

// withStdin подменяет ввод; вызывать до newTestEnv.
func withStdin(t *testing.T, input string) {
	t.Helper()
	old := In
	In = strings.NewReader(input)
	t.Cleanup(func() { In = old })
}

// newTestEnv собирает Env поверх httptest-сервера и хранилища в памяти.
// role == "" — анонимная сессия.
func newTestEnv(t *testing.T, h http.Handler, role string) *Env {
	t.Helper()
	if h == nil {
		h = http.NotFoundHandler()
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	sess, err := session.Open(memory.New(), nil)
	require.NoError(t, err)
	if role != "" {
		require.NoError(t, sess.Login(session.Identity{ID: 1, Username: "root", Role: role}))
	}
	return &Env{
		Config:  &config.Config{APIBase: ts.URL},
		Logger:  zap.NewNop().Sugar(),
		API:     api.New(ts.URL),
		Session: sess,
	}
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}
