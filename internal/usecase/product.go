package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductInput несёт поля формы добавления/обновления товара
type ProductInput struct {
	ID          int64
	ProductName string
	Description string
	Price       decimal.Decimal
	Stock       int
	// ImageURL — сохранённый ранее URL изображения, который форма
	// обновления передаёт обратно для его сохранения при отсутствии
	// нового файла.
	ImageURL string
}

// Upload описывает необязательный загруженный файл изображения
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ProductUseCase определяет бизнес-логику работы с каталогом товаров
type ProductUseCase interface {
	// ListProducts возвращает все товары, новые первыми
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// AddProduct создает товар. Если upload задан и непуст, файл сохраняется
	// в файловом хранилище, а его URL записывается в товар.
	AddProduct(ctx context.Context, input ProductInput, upload *Upload) error

	// UpdateProduct полностью перезаписывает изменяемые поля товара.
	// Новый файл замещает прежний: старый файл удаляется из хранилища
	// до сохранения нового. Без нового файла прежний URL сохраняется.
	UpdateProduct(ctx context.Context, input ProductInput, upload *Upload) error

	// DeleteProduct удаляет строку товара. Файл изображения при этом
	// не удаляется.
	DeleteProduct(ctx context.Context, id int64) error
}
