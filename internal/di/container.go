package di

import (
	"github.com/GoArmGo/ShopApp/internal/adapter/storage/s3"
	"github.com/GoArmGo/ShopApp/internal/app"
	"github.com/GoArmGo/ShopApp/internal/config"
	"github.com/GoArmGo/ShopApp/internal/core/ports"
	"github.com/GoArmGo/ShopApp/internal/database/client"
	"github.com/GoArmGo/ShopApp/internal/database/storage"
	"github.com/GoArmGo/ShopApp/internal/logger"
	"github.com/GoArmGo/ShopApp/internal/rabbitmq"
	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/GoArmGo/ShopApp/internal/storage/local"
	"github.com/GoArmGo/ShopApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (подключение + миграции)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	productStorage := storage.NewProductStorage(dbClient.DB, slogger)
	eventStorage := storage.NewEventStorage(dbClient.DB, slogger)

	// 4. Инициализация файлового хранилища изображений
	var fileStorage ports.FileStorage
	if cfg.StorageBackend == "s3" {
		fileStorage, err = s3.NewClient(cfg, slogger)
	} else {
		fileStorage, err = local.NewStorage(cfg.ImagesDir, slogger)
	}
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ (необязательная: пустой URL отключает события)
	var (
		eventPublisher ports.ProductEventPublisher
		eventConsumer  ports.ProductEventConsumer
		closers        []func() error
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		eventPublisher = rabbitClient
		eventConsumer = rabbitClient
		closers = append(closers, rabbitClient.Close)
	} else {
		slogger.Warn("RABBITMQ_URL is not set, product event publishing is disabled")
		eventPublisher = rabbitmq.NewNoopPublisher(slogger)
	}
	closers = append(closers, dbClient.Close)

	// 6. Инициализация хранилища сессий
	sessions := session.NewStore(cfg.SessionCookieName, cfg.SessionIdleTimeout, slogger)

	// 7. Инициализация бизнес-логики (usecases)
	accountUseCase := usecase.NewAccountUseCase(userStorage, slogger)
	productUseCase := usecase.NewProductUseCase(productStorage, fileStorage, eventPublisher, slogger)

	// 8. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		accountUseCase,
		productUseCase,
		eventStorage,
		eventConsumer,
		sessions,
		closers...,
	)

	slogger.Info("all dependencies initialized successfully")
	return application, nil
}
