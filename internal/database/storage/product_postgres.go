package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ProductStorage реализует интерфейс ports.ProductStorage поверх PostgreSQL
type ProductStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewProductStorage создает новый экземпляр ProductStorage
func NewProductStorage(db *sqlx.DB, logger *slog.Logger) *ProductStorage {
	return &ProductStorage{db: db, logger: logger}
}

// ListProducts возвращает все товары, новые первыми
func (s *ProductStorage) ListProducts(ctx context.Context) ([]domain.Product, error) {
	start := time.Now()

	products := []domain.Product{}
	query := `SELECT * FROM products ORDER BY created_at DESC`

	if err := s.db.SelectContext(ctx, &products, query); err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка товаров: %w", err)
	}

	s.logger.Info("products listed successfully",
		"count", len(products),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return products, nil
}

// AddProduct вставляет новый товар в базе данных.
// Флаг is_active вычисляется из остатка, значение из product игнорируется.
func (s *ProductStorage) AddProduct(ctx context.Context, product *domain.Product) error {
	start := time.Now()

	query := `
	INSERT INTO products (product_name, description, price, stock, created_at, is_active, image_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	err := s.db.QueryRowxContext(ctx, query,
		product.ProductName,
		product.Description,
		product.Price,
		product.Stock,
		product.CreatedAt,
		product.Stock > 0,
		product.ImageURL,
	).Scan(&product.ID)
	if err != nil {
		s.logger.Error("failed to add product", "product_name", product.ProductName, "error", err)
		return fmt.Errorf("ошибка при добавлении товара: %w", err)
	}

	s.logger.Info("product added successfully",
		"product_id", product.ID,
		"product_name", product.ProductName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateProduct полностью перезаписывает изменяемые поля товара по его ID.
// Пустой imageURL означает "оставить URL, который несёт сам product":
// слияния частичных обновлений на уровне хранилища нет.
func (s *ProductStorage) UpdateProduct(ctx context.Context, product *domain.Product, imageURL string) error {
	start := time.Now()

	finalImageURL := product.ImageURL
	if imageURL != "" {
		finalImageURL = sql.NullString{String: imageURL, Valid: true}
	}

	query := `
	UPDATE products
	SET product_name = $1, description = $2, price = $3, stock = $4, is_active = $5, image_url = $6
	WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		product.ProductName,
		product.Description,
		product.Price,
		product.Stock,
		product.Stock > 0,
		finalImageURL,
		product.ID,
	)
	if err != nil {
		s.logger.Error("failed to update product", "product_id", product.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении товара: %w", err)
	}

	s.logger.Info("product updated successfully",
		"product_id", product.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteProduct удаляет товар по ID.
// Удаление несуществующего ID не считается ошибкой,
// связанный файл изображения при этом не удаляется.
func (s *ProductStorage) DeleteProduct(ctx context.Context, id int64) error {
	start := time.Now()

	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete product", "product_id", id, "error", err)
		return fmt.Errorf("ошибка при удалении товара: %w", err)
	}

	s.logger.Info("product deleted",
		"product_id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
