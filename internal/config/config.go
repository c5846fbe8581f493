package config

import (
	"flag"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Бэкенды хранения файлов и состояний диалогов.
const (
	AssetBackendFS    = "fs"
	AssetBackendMinio = "minio"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	// Telegram
	BotToken      string `env:"BOT_TOKEN"`
	WebhookURL    string `env:"WEBHOOK_URL"` // публичный https-адрес; пусто: long polling
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	SuperadminID  int64  `env:"SUPERADMIN_ID"`

	// Хранилище
	DatabaseDSN string `env:"DATABASE_URI"`

	// HTTP
	BaseURL string `env:"BASE_URL"`

	// Файлы обложек и документов
	AssetBackend   string `env:"ASSET_BACKEND"`
	UploadDir      string `env:"UPLOAD_DIR"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`

	// Подписанные ссылки на скачивание
	AssetSecret  string        `env:"ASSET_SECRET"`
	AssetLinkTTL time.Duration `env:"ASSET_LINK_TTL"`

	// Состояния диалогов
	SessionBackend string        `env:"SESSION_BACKEND"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	SessionTTL     time.Duration `env:"SESSION_TTL"` // 0: без истечения

	LogJSON bool `env:"LOG_JSON"`
	Version bool `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают поверх значений из env
	flag.StringVar(&cfg.BotToken, "token", cfg.BotToken, "токен Telegram-бота")
	flag.StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "публичный адрес для webhook (пусто: polling)")
	flag.Int64Var(&cfg.SuperadminID, "superadmin", cfg.SuperadminID, "Telegram ID первого суперадмина")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (путь к SQLite или postgres://...)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес HTTP-сервера host:port")
	flag.StringVar(&cfg.AssetBackend, "assets", cfg.AssetBackend, "хранилище файлов: fs|minio")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для загруженных файлов")
	flag.StringVar(&cfg.SessionBackend, "sessions", cfg.SessionBackend, "хранилище диалогов: memory|redis")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

// applyDefaults заполняет пустые значения и нормализует некорректные.
func applyDefaults(cfg *Config) {
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "catalog.db"
	}
	// BaseURL должен быть в виде "address:port" (без схемы и пути), иначе берём значение по умолчанию.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	cfg.WebhookURL = strings.TrimRight(strings.TrimSpace(cfg.WebhookURL), "/")

	switch cfg.AssetBackend {
	case AssetBackendFS, AssetBackendMinio:
	default:
		cfg.AssetBackend = AssetBackendFS
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.MinioBucket == "" {
		cfg.MinioBucket = "catalog"
	}
	if cfg.AssetLinkTTL <= 0 {
		cfg.AssetLinkTTL = 24 * time.Hour
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		cfg.SessionBackend = SessionBackendMemory
	}
	if cfg.SessionBackend == SessionBackendRedis && cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.SessionTTL < 0 {
		cfg.SessionTTL = 0
	}
}

// WebhookEnabled сообщает, принимаются ли обновления через webhook.
func (c *Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// LinksEnabled сообщает, можно ли выдавать подписанные ссылки на файлы.
func (c *Config) LinksEnabled() bool {
	return c.WebhookURL != "" && c.AssetSecret != ""
}
