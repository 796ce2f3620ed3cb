package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopApp/internal/core/ports"
	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/GoArmGo/ShopApp/internal/messaging/payloads"
)

// productUseCase implements ProductUseCase
type productUseCase struct {
	productStorage ports.ProductStorage
	fileStorage    ports.FileStorage
	publisher      ports.ProductEventPublisher
	logger         *slog.Logger
	now            func() time.Time
}

// NewProductUseCase создает новый экземпляр ProductUseCase
func NewProductUseCase(
	productStorage ports.ProductStorage,
	fileStorage ports.FileStorage,
	publisher ports.ProductEventPublisher,
	logger *slog.Logger,
) ProductUseCase {
	return &productUseCase{
		productStorage: productStorage,
		fileStorage:    fileStorage,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

// ListProducts возвращает все товары, новые первыми
func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.productStorage.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка товаров: %w", err)
	}
	return products, nil
}

// AddProduct сохраняет необязательное изображение и создает товар.
// Дата создания ставится в момент вызова, флаг активности
// вычисляется хранилищем из остатка.
func (uc *productUseCase) AddProduct(ctx context.Context, input ProductInput, upload *Upload) error {
	imageURL := ""

	if upload != nil && upload.Size > 0 {
		url, err := uc.fileStorage.SaveUpload(ctx, upload.Filename, upload.Content)
		if err != nil {
			return fmt.Errorf("usecase: ошибка сохранения изображения товара: %w", err)
		}
		imageURL = url
	}

	product := &domain.Product{
		ProductName: input.ProductName,
		Description: nullString(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		CreatedAt:   uc.now(),
		ImageURL:    nullString(imageURL),
	}

	if err := uc.productStorage.AddProduct(ctx, product); err != nil {
		return fmt.Errorf("usecase: ошибка при добавлении товара: %w", err)
	}

	uc.publishEvent(ctx, payloads.ActionProductAdded, product.ID, product.ProductName)
	return nil
}

// UpdateProduct перезаписывает изменяемые поля товара.
// Если загружен новый файл, прежний файл удаляется из хранилища
// до сохранения нового; замена не атомарна.
func (uc *productUseCase) UpdateProduct(ctx context.Context, input ProductInput, upload *Upload) error {
	imageURL := ""

	if upload != nil && upload.Size > 0 {
		if input.ImageURL != "" {
			if err := uc.fileStorage.Delete(ctx, input.ImageURL); err != nil {
				return fmt.Errorf("usecase: ошибка удаления прежнего изображения: %w", err)
			}
		}

		url, err := uc.fileStorage.SaveUpload(ctx, upload.Filename, upload.Content)
		if err != nil {
			return fmt.Errorf("usecase: ошибка сохранения нового изображения: %w", err)
		}
		imageURL = url
	}

	product := &domain.Product{
		ID:          input.ID,
		ProductName: input.ProductName,
		Description: nullString(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    nullString(input.ImageURL),
	}

	if err := uc.productStorage.UpdateProduct(ctx, product, imageURL); err != nil {
		return fmt.Errorf("usecase: ошибка при обновлении товара: %w", err)
	}

	uc.publishEvent(ctx, payloads.ActionProductUpdated, product.ID, product.ProductName)
	return nil
}

// DeleteProduct удаляет строку товара по ID.
// Связанный файл изображения намеренно остаётся на диске:
// файлы удаляются только при замене изображения во время обновления.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if err := uc.productStorage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении товара: %w", err)
	}

	uc.publishEvent(ctx, payloads.ActionProductDeleted, id, "")
	return nil
}

// publishEvent публикует событие каталога.
// Неудачная публикация только логируется и не прерывает операцию.
func (uc *productUseCase) publishEvent(ctx context.Context, action string, productID int64, productName string) {
	payload := payloads.ProductEventPayload{
		Action:      action,
		ProductID:   productID,
		ProductName: productName,
		OccurredAt:  uc.now(),
	}
	if err := uc.publisher.PublishProductEvent(ctx, payload); err != nil {
		uc.logger.Error("failed to publish product event", "action", action, "product_id", productID, "error", err)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
