package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopApp/internal/config"
	"github.com/GoArmGo/ShopApp/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client представляет собой клиент RabbitMQ для событий каталога
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Объявление очереди — идемпотентная операция: очередь будет создана,
	// если ее нет, и ничего не произойдет, если она уже существует.
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable - очередь будет сохраняться при перезапуске RabbitMQ
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)

	return &Client{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}

// PublishProductEvent публикует событие каталога в очередь RabbitMQ.
// Реализует интерфейс ports.ProductEventPublisher.
func (c *Client) PublishProductEvent(ctx context.Context, payload payloads.ProductEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Info("product event published", "queue", c.queue.Name, "action", payload.Action, "product_id", payload.ProductID)
	return nil
}

// StartConsumingProductEvents начинает потребление событий каталога из очереди.
// Реализует интерфейс ports.ProductEventConsumer.
func (c *Client) StartConsumingProductEvents(ctx context.Context, handler func(context.Context, payloads.ProductEventPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack (подтверждаем вручную)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.ProductEventPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("error unmarshalling message", "error", err, "body", string(msg.Body))
					// Плохой формат сообщения: отклоняем без возврата в очередь,
					// чтобы не застрять в бесконечном цикле ошибок.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("error NACKing message after unmarshal failure", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("error processing message", "error", err, "action", payload.Action, "product_id", payload.ProductID)
					// Обработка не удалась: возвращаем сообщение в очередь
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("error NACKing message after processing failure", "error", err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						c.logger.Error("error ACKing message", "error", err)
					}
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}

// NoopPublisher используется, когда RABBITMQ_URL не задан:
// публикация событий каталога отключена.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher создает заглушку публикатора событий
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishProductEvent(ctx context.Context, payload payloads.ProductEventPayload) error {
	p.logger.Debug("event publishing disabled, dropping product event", "action", payload.Action, "product_id", payload.ProductID)
	return nil
}
