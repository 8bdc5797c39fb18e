package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	// OwnerChatID: единственный чат, которому отвечает бот (0: без ограничения).
	OwnerChatID  int64
	DatabasePath string
	// DatabaseURL: DSN Postgres; если задан, используется вместо sqlite.
	DatabaseURL string
	Location    *time.Location
	Workers     int
	QueueSize   int
}

// LoadConfig загружает настройки бота: без TELEGRAM_TOKEN бот не стартует.
func LoadConfig() (*Config, error) {
	cfg, err := LoadCLIConfig()
	if err != nil {
		return nil, err
	}
	if cfg.TelegramToken == "" {
		return nil, ErrNoToken{}
	}
	return cfg, nil
}

// LoadCLIConfig: то же самое без требования токена.
func LoadCLIConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DatabasePath:  getenv("DATABASE_PATH", "shiftpay.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Location:      time.Local,
		Workers:       4,
		QueueSize:     32,
	}

	if v := os.Getenv("OWNER_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &ValidationError{Field: "OWNER_CHAT_ID", Message: "must be an integer chat id"}
		}
		cfg.OwnerChatID = id
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, &ValidationError{Field: "TIMEZONE", Message: err.Error()}
		}
		cfg.Location = loc
	}
	var err error
	if cfg.Workers, err = positiveInt("WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = positiveInt("QUEUE_SIZE", cfg.QueueSize); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func positiveInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, &ValidationError{Field: key, Message: "must be a positive integer"}
	}
	return n, nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN не задан в окружении"
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}
