package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/ShopApp/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// ValidateCredentials возвращает пользователя с совпадающими email и паролем
	// или (nil, nil), если такого пользователя нет.
	ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error)

	// RegisterUser регистрирует нового пользователя.
	// Возвращает false, если email уже занят. Проверка и вставка выполняются
	// двумя отдельными запросами без транзакции.
	RegisterUser(ctx context.Context, user *domain.User) (bool, error)
}

// ProductStorage определяет методы для взаимодействия с хранилищем товаров
type ProductStorage interface {
	// ListProducts возвращает все товары, отсортированные по дате создания (новые первыми)
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// AddProduct вставляет новый товар. Флаг is_active вычисляется из остатка.
	AddProduct(ctx context.Context, product *domain.Product) error

	// UpdateProduct полностью перезаписывает изменяемые поля товара по его ID.
	// Пустой imageURL означает "сохранить URL, который несёт сам product".
	UpdateProduct(ctx context.Context, product *domain.Product, imageURL string) error

	// DeleteProduct удаляет товар по ID. Удаление несуществующего ID не является ошибкой.
	DeleteProduct(ctx context.Context, id int64) error
}

// EventStorage определяет методы для записи аудита изменений каталога
type EventStorage interface {
	RecordProductEvent(ctx context.Context, event *domain.ProductEvent) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем изображений
// (локальный диск или S3/MinIO)
type FileStorage interface {
	// SaveUpload сохраняет загруженный файл под случайным именем,
	// сохраняя расширение оригинала, и возвращает относительный URL.
	SaveUpload(ctx context.Context, originalName string, reader io.Reader) (string, error)

	// Delete удаляет файл по его относительному URL.
	// Отсутствие файла не считается ошибкой.
	Delete(ctx context.Context, imageURL string) error
}
