package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShopApp/internal/core/ports"
	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/GoArmGo/ShopApp/internal/messaging/payloads"
)

// runWorker запускает потребителя очереди событий каталога
// и записывает каждое событие в таблицу аудита.
func runWorker(
	ctx context.Context,
	consumer ports.ProductEventConsumer,
	eventStorage ports.EventStorage,
	logger *slog.Logger,
) error {
	if consumer == nil {
		return fmt.Errorf("воркер требует подключения к RabbitMQ: задайте RABBITMQ_URL")
	}

	logger.Info("worker started, waiting for product events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ProductEventPayload) error {
		event := &domain.ProductEvent{
			Action:      payload.Action,
			ProductID:   payload.ProductID,
			ProductName: payload.ProductName,
			OccurredAt:  payload.OccurredAt,
		}

		if err := eventStorage.RecordProductEvent(ctx, event); err != nil {
			logger.Error("worker: failed to record product event", "action", payload.Action, "product_id", payload.ProductID, "error", err)
			return err
		}

		logger.Info("worker: product event recorded", "action", payload.Action, "product_id", payload.ProductID)
		return nil
	}

	if err := consumer.StartConsumingProductEvents(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	logger.Info("worker: shutdown signal received")

	cancelWorker()

	logger.Info("worker stopped gracefully")
	return nil
}
