package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	oldArgs := os.Args
	os.Args = []string{oldArgs[0]}
	t.Cleanup(func() { os.Args = oldArgs })
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_ADDR", "DATABASE_URI", "UPLOAD_DIR", "LOG_LEVEL", "API_BASE", "STORE_DRIVER",
		"CLIENT_DB_PATH", "HTTP_TIMEOUT", "CHAT_POLL_INTERVAL", "SHELL_POLL_INTERVAL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "http://localhost:8000", cfg.APIBase)
	assert.Equal(t, "localhost:8000", cfg.ServerAddr)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, 10*time.Second, cfg.ChatPollInterval)
	assert.Equal(t, 30*time.Second, cfg.ShellPollInterval)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NotEmpty(t, cfg.ClientDBPath)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE", "api.example.com:9000")
	t.Setenv("STORE_DRIVER", "fs")
	t.Setenv("CHAT_POLL_INTERVAL", "2s")
	t.Setenv("HTTP_TIMEOUT", "5s")
	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "http://api.example.com:9000", cfg.APIBase)
	assert.Equal(t, StoreFS, cfg.StoreDriver)
	assert.Equal(t, 2*time.Second, cfg.ChatPollInterval)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestNewConfig_InvalidValuesFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("SERVER_ADDR", "http://bad:8080")
	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "localhost:8000", cfg.ServerAddr)
}

func TestNormalizeAPIBase(t *testing.T) {
	cases := map[string]string{
		"":                           "http://localhost:8000",
		"localhost:8081":             "http://localhost:8081",
		"https://hr.example.com/":    "https://hr.example.com",
		"http://10.0.0.1:8000":       "http://10.0.0.1:8000",
		"ftp://nope":                 "http://localhost:8000",
		"  http://spaced.example  ":  "http://spaced.example",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeAPIBase(in), "input %q", in)
	}
}
