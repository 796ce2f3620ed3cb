package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/GoArmGo/ShopApp/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// Кука одноразового уведомления (аналог TempData):
// ставится при успешной регистрации, читается и гасится страницей входа.
const flashCookieName = "shopapp_flash"

// Фиксированные сообщения для пользователя. Текст ошибок нижних слоёв
// наружу не передаётся.
const (
	msgInvalidCredentials = "Неверный e-mail или пароль!"
	msgEmailTaken         = "Этот e-mail уже используется!"
	msgLoginFailed        = "Во время входа произошла ошибка. Попробуйте позже."
	msgRegisterFailed     = "Во время регистрации произошла ошибка. Попробуйте позже."
	msgRegisterSuccess    = "Регистрация успешно завершена!"
)

// registerForm — структурная валидация полей регистрации
type registerForm struct {
	Name     string `validate:"required"`
	Surname  string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AccountHandler — обработчик HTTP-запросов входа, регистрации и выхода.
type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	productUseCase usecase.ProductUseCase
	sessions       *session.Store
	validate       *validator.Validate
	logger         *slog.Logger
}

// NewAccountHandler создаёт новый экземпляр AccountHandler.
func NewAccountHandler(
	accountUC usecase.AccountUseCase,
	productUC usecase.ProductUseCase,
	sessions *session.Store,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUC,
		productUseCase: productUC,
		sessions:       sessions,
		validate:       validator.New(),
		logger:         logger,
	}
}

// showcase загружает витрину товаров для страницы входа.
// Витрина показывается без авторизации; при ошибке хранилища
// страница рендерится с пустым списком.
func (h *AccountHandler) showcase(r *http.Request) []domain.Product {
	products, err := h.productUseCase.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to load product showcase", "error", err)
		return nil
	}
	return products
}

// ShowLogin — страница входа с витриной товаров (GET /Account/Login)
func (h *AccountHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	renderPage(w, "login.html", loginPage{
		Products: h.showcase(r),
		Success:  popFlash(w, r),
	}, h.logger)
}

// Login — обработка формы входа (POST /Account/Login).
// При успехе в сессию записываются идентификатор и имя пользователя.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.accountUseCase.Login(r.Context(), email, password)
	if err != nil {
		msg := msgLoginFailed
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			msg = msgInvalidCredentials
		} else {
			h.logger.Error("login failed", "error", err)
		}
		renderPage(w, "login.html", loginPage{
			Products: h.showcase(r),
			Error:    msg,
		}, h.logger)
		return
	}

	sessionID := h.sessions.Create(user.ID, user.Name)
	h.sessions.SetCookie(w, sessionID)

	http.Redirect(w, r, "/Home/Index", http.StatusSeeOther)
}

// Register — обработка формы регистрации (POST /Account/Register)
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		Name:     r.FormValue("name"),
		Surname:  r.FormValue("surname"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := h.validate.Struct(form); err != nil {
		// Структурная валидация не прошла: перерисовываем страницу входа
		// без конкретного сообщения
		h.logger.Warn("registration form validation failed", "error", err)
		renderPage(w, "login.html", loginPage{Products: h.showcase(r)}, h.logger)
		return
	}

	user := &domain.User{
		Name:     form.Name,
		Surname:  form.Surname,
		Email:    form.Email,
		Password: form.Password,
	}

	err := h.accountUseCase.Register(r.Context(), user)
	switch {
	case err == nil:
		setFlash(w, msgRegisterSuccess)
		http.Redirect(w, r, "/Account/Login", http.StatusSeeOther)
	case errors.Is(err, usecase.ErrEmailTaken):
		renderPage(w, "login.html", loginPage{
			Products: h.showcase(r),
			Error:    msgEmailTaken,
		}, h.logger)
	default:
		h.logger.Error("registration failed", "error", err)
		renderPage(w, "login.html", loginPage{
			Products: h.showcase(r),
			Error:    msgRegisterFailed,
		}, h.logger)
	}
}

// Logout — выход (POST /Account/Logout).
// Сессия очищается целиком и безусловно.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, _ := h.sessions.FromRequest(r); id != "" {
		h.sessions.Delete(id)
	}
	h.sessions.ClearCookie(w)

	http.Redirect(w, r, "/Account/Login", http.StatusSeeOther)
}

// setFlash ставит одноразовое уведомление
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		HttpOnly: true,
		Path:     "/",
	})
}

// popFlash читает и гасит одноразовое уведомление
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
