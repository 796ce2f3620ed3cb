package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ShopApp/internal/config"
	"github.com/GoArmGo/ShopApp/internal/core/ports"
	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/GoArmGo/ShopApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

// App собирает все зависимости приложения
type App struct {
	Config         *config.Config
	logger         *slog.Logger
	db             *sqlx.DB
	accountUseCase usecase.AccountUseCase
	productUseCase usecase.ProductUseCase
	eventStorage   ports.EventStorage
	eventConsumer  ports.ProductEventConsumer
	sessions       *session.Store
	closers        []func() error
}

// NewApp создает экземпляр приложения из готовых зависимостей.
// eventConsumer может быть nil, если RabbitMQ не сконфигурирован.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	accountUseCase usecase.AccountUseCase,
	productUseCase usecase.ProductUseCase,
	eventStorage ports.EventStorage,
	eventConsumer ports.ProductEventConsumer,
	sessions *session.Store,
	closers ...func() error,
) *App {
	return &App{
		Config:         cfg,
		logger:         logger,
		db:             db,
		accountUseCase: accountUseCase,
		productUseCase: productUseCase,
		eventStorage:   eventStorage,
		eventConsumer:  eventConsumer,
		sessions:       sessions,
		closers:        closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется
// до сигнала завершения.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("running application", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.accountUseCase, a.productUseCase, a.sessions, a.logger)

	case "worker":
		err = runWorker(ctx, a.eventConsumer, a.eventStorage, a.logger)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	// Аккуратно закрываем ресурсы независимо от исхода
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	if err != nil {
		return err
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			return fmt.Errorf("ошибка закрытия ресурса: %w", err)
		}
	}
	return nil
}
