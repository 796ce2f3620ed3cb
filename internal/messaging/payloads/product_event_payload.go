package payloads

import "time"

// Действия, публикуемые в очередь событий каталога.
const (
	ActionProductAdded   = "product_added"
	ActionProductUpdated = "product_updated"
	ActionProductDeleted = "product_deleted"
)

// ProductEventPayload описывает сообщение о мутации каталога,
// которое сервер публикует в RabbitMQ, а воркер записывает в аудит.
type ProductEventPayload struct {
	Action      string    `json:"action"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}
