package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT"`

	LogLevel  string `env:"LOG_LEVEL"`  // "debug", "info", "warn", "error"
	LogFormat string `env:"LOG_FORMAT"` // "json" или "text"

	// Настройки сессий
	SessionCookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"shopapp_session"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT"`

	// Настройки хранилища изображений
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"` // "local" или "s3"
	ImagesDir      string `env:"IMAGES_DIR"`

	// Настройки для MinIO (нужны только при STORAGE_BACKEND=s3)
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION"`

	RabbitMQ struct {
		// Пустой URL отключает публикацию событий каталога
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"product_events_queue"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Вручную устанавливаем значения по умолчанию для тех полей, где они нужны
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.ImagesDir == "" {
		cfg.ImagesDir = "wwwroot/images"
	}
	if cfg.SessionIdleTimeout <= 0 {
		cfg.SessionIdleTimeout = 30 * time.Minute
	}

	if cfg.StorageBackend != "local" && cfg.StorageBackend != "s3" {
		return nil, fmt.Errorf("неизвестный STORAGE_BACKEND: %q (используйте 'local' или 's3')", cfg.StorageBackend)
	}

	// env.Parse не умеет условный required: ключи MinIO обязательны
	// только когда выбран бэкенд s3
	if cfg.StorageBackend == "s3" {
		if cfg.MinioEndpoint == "" || cfg.MinioAccessKeyID == "" || cfg.MinioSecretAccessKey == "" ||
			cfg.MinioBucketName == "" || cfg.MinioRegion == "" {
			return nil, fmt.Errorf("для STORAGE_BACKEND=s3 должны быть заданы MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME и MINIO_REGION")
		}
	}

	return &cfg, nil
}
