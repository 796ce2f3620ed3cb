package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/jmoiron/sqlx"
)

// EventStorage реализует интерфейс ports.EventStorage поверх PostgreSQL.
// Используется только воркером для записи аудита изменений каталога.
type EventStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewEventStorage создает новый экземпляр EventStorage
func NewEventStorage(db *sqlx.DB, logger *slog.Logger) *EventStorage {
	return &EventStorage{db: db, logger: logger}
}

// RecordProductEvent сохраняет запись аудита в базе данных
func (s *EventStorage) RecordProductEvent(ctx context.Context, event *domain.ProductEvent) error {
	start := time.Now()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO product_events (action, product_id, product_name, occurred_at)
		VALUES (:action, :product_id, :product_name, :occurred_at)
	`, event)
	if err != nil {
		s.logger.Error("failed to record product event", "action", event.Action, "product_id", event.ProductID, "error", err)
		return fmt.Errorf("ошибка при записи события каталога: %w", err)
	}

	s.logger.Info("product event recorded",
		"action", event.Action,
		"product_id", event.ProductID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
