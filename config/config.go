package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const (
	DefaultWorkers      = 4
	DefaultMaxUploadMB  = 50
	DefaultSessionDir   = "session"
	DefaultDownloadDir  = "downloads"
	DefaultSettingsFile = "user_settings.json"
	DefaultOrphanMaxAge = time.Hour
)

type Config struct {
	BotToken string
	AppID    int
	AppHash  string
	OwnerID  int64

	SessionDir   string
	DownloadDir  string
	SettingsFile string

	Workers        int
	MaxUploadBytes int64
	OrphanMaxAge   time.Duration

	YtdlpPath    string
	YtdlpCookies string

	LogLevel    string
	MetricsAddr string
}

// Load reads configuration from the environment, picking up a .env file
// in the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	appID, err := getEnvInt("APP_ID", 0)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("WORKERS", DefaultWorkers)
	if err != nil {
		return nil, err
	}
	maxMB, err := getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB)
	if err != nil {
		return nil, err
	}
	ownerID, err := getEnvInt64("OWNER_ID", 0)
	if err != nil {
		return nil, err
	}
	orphanAge, err := getEnvDuration("ORPHAN_MAX_AGE", DefaultOrphanMaxAge)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		AppID:          appID,
		AppHash:        os.Getenv("APP_HASH"),
		OwnerID:        ownerID,
		SessionDir:     getEnv("SESSION_DIR", DefaultSessionDir),
		DownloadDir:    getEnv("DOWNLOAD_DIR", DefaultDownloadDir),
		SettingsFile:   getEnv("SETTINGS_FILE", DefaultSettingsFile),
		Workers:        workers,
		MaxUploadBytes: int64(maxMB) * 1024 * 1024,
		OrphanMaxAge:   orphanAge,
		YtdlpPath:      os.Getenv("YTDLP_PATH"),
		YtdlpCookies:   os.Getenv("YTDLP_COOKIES"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is not set")
	}
	if c.AppID == 0 || c.AppHash == "" {
		return errors.New("APP_ID and APP_HASH are required")
	}
	if c.Workers <= 0 {
		return errors.Errorf("WORKERS must be positive, got %d", c.Workers)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return d, nil
}
