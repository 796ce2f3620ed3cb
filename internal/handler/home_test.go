package handler

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attachSession(r *http.Request, store *session.Store, cookieName string) {
	id := store.Create(7, "Ivan")
	r.AddCookie(&http.Cookie{Name: cookieName, Value: id})
}

func TestIndex_WithoutSessionRedirectsToLogin(t *testing.T) {
	products := &fakeProductUseCase{}
	h := NewHomeHandler(products, testSessionStore(t), testLogger())

	r := httptest.NewRequest(http.MethodGet, "/Home/Index", nil)
	w := httptest.NewRecorder()

	h.Index(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Account/Login", w.Header().Get("Location"))
	// До проверки сессии запрос списка товаров выполняться не должен
	assert.Zero(t, products.listCalls)
}

func TestIndex_WithSessionRendersProducts(t *testing.T) {
	products := &fakeProductUseCase{products: []domain.Product{
		{
			ID:          1,
			ProductName: "Widget",
			Price:       decimal.RequireFromString("9.99"),
			Stock:       3,
			CreatedAt:   time.Now(),
			IsActive:    true,
			ImageURL:    sql.NullString{String: "/images/w.png", Valid: true},
		},
	}}
	sessions := testSessionStore(t)
	h := NewHomeHandler(products, sessions, testLogger())

	r := httptest.NewRequest(http.MethodGet, "/Home/Index", nil)
	attachSession(r, sessions, "test_session")
	w := httptest.NewRecorder()

	h.Index(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, products.listCalls)
	body := w.Body.String()
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "Ivan")
	assert.Contains(t, body, "/images/w.png")
}

func newMultipartProductForm(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestAddProduct_WithoutSessionRedirectsToLogin(t *testing.T) {
	products := &fakeProductUseCase{}
	h := NewHomeHandler(products, testSessionStore(t), testLogger())

	body, contentType := newMultipartProductForm(t, map[string]string{
		"product_name": "Widget", "price": "9.99", "stock": "1",
	}, "", "", "")
	r := httptest.NewRequest(http.MethodPost, "/Home/AddProduct", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.AddProduct(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Account/Login", w.Header().Get("Location"))
	assert.Empty(t, products.added)
}

func TestAddProduct_ValidFormAlwaysRedirectsHome(t *testing.T) {
	products := &fakeProductUseCase{}
	sessions := testSessionStore(t)
	h := NewHomeHandler(products, sessions, testLogger())

	body, contentType := newMultipartProductForm(t, map[string]string{
		"product_name": "Widget",
		"description":  "A widget",
		"price":        "9.99",
		"stock":        "3",
	}, "image_file", "widget.png", "png-bytes")
	r := httptest.NewRequest(http.MethodPost, "/Home/AddProduct", body)
	r.Header.Set("Content-Type", contentType)
	attachSession(r, sessions, "test_session")
	w := httptest.NewRecorder()

	h.AddProduct(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Home/Index", w.Header().Get("Location"))

	require.Len(t, products.added, 1)
	added := products.added[0]
	assert.Equal(t, "Widget", added.ProductName)
	assert.Equal(t, 3, added.Stock)
	assert.True(t, decimal.RequireFromString("9.99").Equal(added.Price))
}

func TestAddProduct_StorageFailureStillRedirectsHome(t *testing.T) {
	products := &fakeProductUseCase{mutationErr: assert.AnError}
	sessions := testSessionStore(t)
	h := NewHomeHandler(products, sessions, testLogger())

	body, contentType := newMultipartProductForm(t, map[string]string{
		"product_name": "Widget", "price": "9.99", "stock": "3",
	}, "", "", "")
	r := httptest.NewRequest(http.MethodPost, "/Home/AddProduct", body)
	r.Header.Set("Content-Type", contentType)
	attachSession(r, sessions, "test_session")
	w := httptest.NewRecorder()

	h.AddProduct(w, r)

	// Ошибка хранилища пользователю не показывается
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Home/Index", w.Header().Get("Location"))
}

func TestUpdateProduct_CarriesExistingImageURL(t *testing.T) {
	products := &fakeProductUseCase{}
	sessions := testSessionStore(t)
	h := NewHomeHandler(products, sessions, testLogger())

	body, contentType := newMultipartProductForm(t, map[string]string{
		"id":           "4",
		"product_name": "Widget",
		"price":        "12.00",
		"stock":        "5",
		"image_url":    "/images/keep.png",
	}, "", "", "")
	r := httptest.NewRequest(http.MethodPost, "/Home/UpdateProduct", body)
	r.Header.Set("Content-Type", contentType)
	attachSession(r, sessions, "test_session")
	w := httptest.NewRecorder()

	h.UpdateProduct(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, products.updated, 1)
	assert.Equal(t, int64(4), products.updated[0].ID)
	assert.Equal(t, "/images/keep.png", products.updated[0].ImageURL)
}

func TestDeleteProduct_ExecutesWithoutSession(t *testing.T) {
	// Проверка сессии на этом действии отсутствует,
	// в отличие от остальных мутирующих действий
	products := &fakeProductUseCase{}
	h := NewHomeHandler(products, testSessionStore(t), testLogger())

	form := url.Values{"id": {"4"}}
	r := httptest.NewRequest(http.MethodPost, "/Home/DeleteProduct", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.DeleteProduct(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Home/Index", w.Header().Get("Location"))
	assert.Equal(t, []int64{4}, products.deletedIDs)
}

func TestDeleteProduct_InvalidIDRedirectsWithoutCall(t *testing.T) {
	products := &fakeProductUseCase{}
	h := NewHomeHandler(products, testSessionStore(t), testLogger())

	form := url.Values{"id": {"not-a-number"}}
	r := httptest.NewRequest(http.MethodPost, "/Home/DeleteProduct", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.DeleteProduct(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, products.deletedIDs)
}
