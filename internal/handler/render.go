package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/ShopApp/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// loginPage — данные для страницы входа: витрина товаров,
// сообщение об ошибке и одноразовое уведомление об успехе.
type loginPage struct {
	Products []domain.Product
	Error    string
	Success  string
}

// indexPage — данные для домашней страницы каталога
type indexPage struct {
	UserName string
	Products []domain.Product
}

// renderPage рендерит именованный шаблон.
// Ошибка рендеринга логируется; часть ответа к этому моменту
// могла уже уйти клиенту.
func renderPage(w http.ResponseWriter, name string, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("failed to render template", "template", name, "error", err)
	}
}
