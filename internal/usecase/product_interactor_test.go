package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/GoArmGo/ShopApp/internal/messaging/payloads"
	"github.com/GoArmGo/ShopApp/internal/storage/local"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductStorage struct {
	products     []domain.Product
	added        []*domain.Product
	updated      []*domain.Product
	updatedURLs  []string
	deletedIDs   []int64
	nextInsertID int64
}

func (f *fakeProductStorage) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductStorage) AddProduct(ctx context.Context, product *domain.Product) error {
	f.nextInsertID++
	product.ID = f.nextInsertID
	f.added = append(f.added, product)
	return nil
}

func (f *fakeProductStorage) UpdateProduct(ctx context.Context, product *domain.Product, imageURL string) error {
	f.updated = append(f.updated, product)
	f.updatedURLs = append(f.updatedURLs, imageURL)
	return nil
}

func (f *fakeProductStorage) DeleteProduct(ctx context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type recordingPublisher struct {
	events []payloads.ProductEventPayload
}

func (p *recordingPublisher) PublishProductEvent(ctx context.Context, payload payloads.ProductEventPayload) error {
	p.events = append(p.events, payload)
	return nil
}

func newProductFixture(t *testing.T) (*productUseCase, *fakeProductStorage, *recordingPublisher, string) {
	t.Helper()

	dir := t.TempDir()
	files, err := local.NewStorage(dir, discardLogger())
	require.NoError(t, err)

	storage := &fakeProductStorage{}
	publisher := &recordingPublisher{}

	uc := NewProductUseCase(storage, files, publisher, discardLogger()).(*productUseCase)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	return uc, storage, publisher, dir
}

func imagePath(dir, url string) string {
	return filepath.Join(dir, strings.TrimPrefix(url, "/images/"))
}

func TestAddProduct_WithUpload(t *testing.T) {
	uc, storage, publisher, dir := newProductFixture(t)

	input := ProductInput{
		ProductName: "Widget",
		Description: "A small widget",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       3,
	}
	upload := &Upload{Filename: "widget.png", Size: 4, Content: strings.NewReader("data")}

	require.NoError(t, uc.AddProduct(context.Background(), input, upload))

	require.Len(t, storage.added, 1)
	added := storage.added[0]
	assert.Equal(t, "Widget", added.ProductName)
	assert.True(t, added.Description.Valid)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), added.CreatedAt)
	require.True(t, added.ImageURL.Valid)

	// Файл действительно сохранен на диск
	_, err := os.Stat(imagePath(dir, added.ImageURL.String))
	assert.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, payloads.ActionProductAdded, publisher.events[0].Action)
	assert.Equal(t, added.ID, publisher.events[0].ProductID)
}

func TestAddProduct_WithoutUpload(t *testing.T) {
	uc, storage, _, _ := newProductFixture(t)

	input := ProductInput{ProductName: "Widget", Price: decimal.Zero, Stock: 0}

	require.NoError(t, uc.AddProduct(context.Background(), input, nil))

	require.Len(t, storage.added, 1)
	assert.False(t, storage.added[0].ImageURL.Valid)
	assert.False(t, storage.added[0].Description.Valid)
}

func TestAddProduct_EmptyUploadIsIgnored(t *testing.T) {
	uc, storage, _, _ := newProductFixture(t)

	input := ProductInput{ProductName: "Widget", Price: decimal.Zero, Stock: 1}
	upload := &Upload{Filename: "empty.png", Size: 0, Content: strings.NewReader("")}

	require.NoError(t, uc.AddProduct(context.Background(), input, upload))

	require.Len(t, storage.added, 1)
	assert.False(t, storage.added[0].ImageURL.Valid)
}

func TestUpdateProduct_NewUploadReplacesOldImage(t *testing.T) {
	uc, storage, publisher, dir := newProductFixture(t)

	// Прежнее изображение лежит на диске
	oldURL, err := uc.fileStorage.SaveUpload(context.Background(), "old.png", strings.NewReader("old"))
	require.NoError(t, err)

	input := ProductInput{
		ID:          4,
		ProductName: "Widget",
		Price:       decimal.RequireFromString("12.00"),
		Stock:       5,
		ImageURL:    oldURL,
	}
	upload := &Upload{Filename: "new.png", Size: 3, Content: strings.NewReader("new")}

	require.NoError(t, uc.UpdateProduct(context.Background(), input, upload))

	// Старый файл удален
	_, err = os.Stat(imagePath(dir, oldURL))
	assert.True(t, os.IsNotExist(err))

	// Хранилищу передан URL нового файла, и файл существует
	require.Len(t, storage.updatedURLs, 1)
	newURL := storage.updatedURLs[0]
	require.NotEmpty(t, newURL)
	assert.NotEqual(t, oldURL, newURL)
	_, err = os.Stat(imagePath(dir, newURL))
	assert.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, payloads.ActionProductUpdated, publisher.events[0].Action)
}

func TestUpdateProduct_NoUploadPreservesImage(t *testing.T) {
	uc, storage, _, _ := newProductFixture(t)

	input := ProductInput{
		ID:          4,
		ProductName: "Widget",
		Price:       decimal.RequireFromString("12.00"),
		Stock:       5,
		ImageURL:    "/images/keep.png",
	}

	require.NoError(t, uc.UpdateProduct(context.Background(), input, nil))

	require.Len(t, storage.updated, 1)
	assert.Equal(t, "", storage.updatedURLs[0])
	assert.Equal(t, "/images/keep.png", storage.updated[0].ImageURL.String)
}

func TestDeleteProduct_RowDeletedButImageKept(t *testing.T) {
	uc, storage, publisher, dir := newProductFixture(t)

	url, err := uc.fileStorage.SaveUpload(context.Background(), "kept.png", strings.NewReader("kept"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), 4))

	assert.Equal(t, []int64{4}, storage.deletedIDs)

	// Файл изображения остается на диске после удаления товара
	_, err = os.Stat(imagePath(dir, url))
	assert.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, payloads.ActionProductDeleted, publisher.events[0].Action)
}
