package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы клиентского хранилища сессии.
const (
	StoreSQLite = "sqlite"
	StoreFS     = "fs"
	StoreMemory = "memory"
)

const defaultAPIBase = "http://localhost:8000"

type Config struct {
	// Server-side settings
	ServerAddr  string `env:"SERVER_ADDR"`
	DatabaseDSN string `env:"DATABASE_URI"`
	UploadDir   string `env:"UPLOAD_DIR"`

	// администратор, создаваемый в пустой базе
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Shared settings
	LogLevel string `env:"LOG_LEVEL"`

	// Client-side settings
	APIBase           string        `env:"API_BASE"`
	StoreDriver       string        `env:"STORE_DRIVER"`
	ClientDBPath      string        `env:"CLIENT_DB_PATH"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT"`
	ChatPollInterval  time.Duration `env:"CHAT_POLL_INTERVAL"`
	ShellPollInterval time.Duration `env:"SHELL_POLL_INTERVAL"`
	AssumeYes         bool          `env:"-"` // подтверждать удаление без вопроса (flag only)
	Version           bool          `env:"-"` // show version and exit (flag only)
}

var (
	hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	urlRe      = regexp.MustCompile(`^https?://[^\s/]+(/.*)?$`)
)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают поверх значений из env
	// Server flags
	flag.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "адрес dev-сервера host:port")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к sqlite)")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для загруженных коллекций")
	// Shared flags
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "уровень логирования: debug|info|warn|error")
	// Client flags
	flag.StringVar(&cfg.APIBase, "api-base", cfg.APIBase, "base URL of the API (host:port or full URL)")
	flag.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "client session storage: sqlite|fs|memory")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to client SQLite directory")
	flag.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "HTTP client timeout (0 = transport default)")
	flag.DurationVar(&cfg.ChatPollInterval, "chat-poll", cfg.ChatPollInterval, "status/history poll interval in chat views")
	flag.DurationVar(&cfg.ShellPollInterval, "shell-poll", cfg.ShellPollInterval, "status poll interval in the admin shell")
	flag.BoolVar(&cfg.AssumeYes, "yes", cfg.AssumeYes, "не спрашивать подтверждение удаления")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет пустые значения значениями по умолчанию.
func (cfg *Config) applyDefaults() {
	if cfg.ServerAddr == "" || !hostPortRe.MatchString(cfg.ServerAddr) {
		cfg.ServerAddr = "localhost:8000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	cfg.APIBase = NormalizeAPIBase(cfg.APIBase)

	switch cfg.StoreDriver {
	case StoreSQLite, StoreFS, StoreMemory:
	default:
		cfg.StoreDriver = StoreSQLite
	}
	if cfg.ChatPollInterval <= 0 {
		cfg.ChatPollInterval = 10 * time.Second
	}
	if cfg.ShellPollInterval <= 0 {
		cfg.ShellPollInterval = 30 * time.Second
	}
	if cfg.HTTPTimeout < 0 {
		cfg.HTTPTimeout = 0
	}

	cfgDir, _ := os.UserConfigDir()
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(cfgDir, "PolicyDesk")
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "policydesk.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
	}
}

// NormalizeAPIBase accepts "host:port" or a full http(s) URL and returns a URL without the trailing slash.
// Invalid values fall back to http://localhost:8000.
func NormalizeAPIBase(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return defaultAPIBase
	case urlRe.MatchString(raw):
		return strings.TrimRight(raw, "/")
	case hostPortRe.MatchString(raw):
		return "http://" + raw
	default:
		return defaultAPIBase
	}
}
