package ports

import (
	"context"

	"github.com/GoArmGo/ShopApp/internal/messaging/payloads"
)

// ProductEventPublisher определяет методы для публикации событий каталога
// Этот интерфейс используется бизнес-логикой после успешных мутаций
type ProductEventPublisher interface {
	PublishProductEvent(ctx context.Context, payload payloads.ProductEventPayload) error
}

// ProductEventConsumer определяет методы для потребления событий каталога
// будет использоваться воркером для записи аудита
type ProductEventConsumer interface {
	// StartConsumingProductEvents начинает прослушивание очереди событий каталога
	// принимает функцию-обработчик, которая будет вызываться для каждого полученного сообщения
	StartConsumingProductEvents(ctx context.Context, handler func(context.Context, payloads.ProductEventPayload) error) error
}
