package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/GoArmGo/ShopApp/internal/usecase"
	"github.com/shopspring/decimal"
)

const maxUploadSize = 10 << 20 // 10 MB

// HomeHandler — обработчик HTTP-запросов каталога товаров.
type HomeHandler struct {
	productUseCase usecase.ProductUseCase
	sessions       *session.Store
	logger         *slog.Logger
}

// NewHomeHandler создаёт новый экземпляр HomeHandler.
func NewHomeHandler(productUC usecase.ProductUseCase, sessions *session.Store, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		productUseCase: productUC,
		sessions:       sessions,
		logger:         logger,
	}
}

// requireUser проверяет наличие сессии. Проверка выполняется
// в начале каждого защищённого действия, а не в middleware.
// При отсутствии сессии перенаправляет на страницу входа и
// возвращает false: действие выполняться не должно.
func (h *HomeHandler) requireUser(w http.ResponseWriter, r *http.Request) (*session.Entry, bool) {
	_, entry := h.sessions.FromRequest(r)
	if entry == nil {
		http.Redirect(w, r, "/Account/Login", http.StatusSeeOther)
		return nil, false
	}
	return entry, true
}

// Index — домашняя страница со списком товаров (GET /Home/Index)
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	products, err := h.productUseCase.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
	}

	renderPage(w, "index.html", indexPage{
		UserName: entry.UserName,
		Products: products,
	}, h.logger)
}

// AddProduct — добавление товара (POST /Home/AddProduct).
// Всегда перенаправляет на домашнюю страницу; ошибка хранилища
// пользователю не показывается, только логируется.
func (h *HomeHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	input, upload, err := h.parseProductForm(r)
	if err != nil {
		h.logger.Warn("invalid add product form", "error", err)
		http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
		return
	}
	if upload != nil {
		defer upload.close()
	}

	if err := h.productUseCase.AddProduct(r.Context(), input, upload.toUsecase()); err != nil {
		h.logger.Error("failed to add product", "product_name", input.ProductName, "error", err)
	}

	http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
}

// UpdateProduct — обновление товара (POST /Home/UpdateProduct)
func (h *HomeHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	input, upload, err := h.parseProductForm(r)
	if err != nil {
		h.logger.Warn("invalid update product form", "error", err)
		http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
		return
	}
	if upload != nil {
		defer upload.close()
	}

	if err := h.productUseCase.UpdateProduct(r.Context(), input, upload.toUsecase()); err != nil {
		h.logger.Error("failed to update product", "product_id", input.ID, "error", err)
	}

	http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
}

// DeleteProduct — удаление товара (POST /Home/DeleteProduct).
// Проверки сессии здесь нет, в отличие от остальных мутирующих действий.
func (h *HomeHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		h.logger.Warn("invalid product id in delete form", "value", r.FormValue("id"))
		http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
		return
	}

	if err := h.productUseCase.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Error("failed to delete product", "product_id", id, "error", err)
	}

	http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
}

// formUpload держит открытый multipart-файл до конца обработки запроса
type formUpload struct {
	upload usecase.Upload
	closer interface{ Close() error }
}

func (u *formUpload) toUsecase() *usecase.Upload {
	if u == nil {
		return nil
	}
	return &u.upload
}

func (u *formUpload) close() {
	if u != nil && u.closer != nil {
		_ = u.closer.Close()
	}
}

// parseProductForm разбирает multipart-форму товара.
// Возвращает nil upload, если файл не приложен.
func (h *HomeHandler) parseProductForm(r *http.Request) (usecase.ProductInput, *formUpload, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return usecase.ProductInput{}, nil, err
	}

	var input usecase.ProductInput

	if rawID := r.FormValue("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return usecase.ProductInput{}, nil, err
		}
		input.ID = id
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		return usecase.ProductInput{}, nil, err
	}

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		return usecase.ProductInput{}, nil, err
	}

	input.ProductName = r.FormValue("product_name")
	input.Description = r.FormValue("description")
	input.Price = price
	input.Stock = stock
	input.ImageURL = r.FormValue("image_url")

	file, header, err := r.FormFile("image_file")
	if err != nil {
		if err == http.ErrMissingFile {
			return input, nil, nil
		}
		return usecase.ProductInput{}, nil, err
	}

	return input, &formUpload{
		upload: usecase.Upload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		},
		closer: file,
	}, nil
}
