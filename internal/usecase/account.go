package usecase

import (
	"context"
	"errors"

	"github.com/GoArmGo/ShopApp/internal/domain"
)

// Типизированные ошибки бизнес-логики аккаунтов.
// Обработчики сопоставляют их с фиксированными сообщениями для пользователя,
// текст ошибок нижних слоёв наружу не передаётся.
var (
	// ErrInvalidCredentials — пара email/пароль не совпала ни с одним пользователем
	ErrInvalidCredentials = errors.New("неверный e-mail или пароль")

	// ErrEmailTaken — email уже занят другим пользователем
	ErrEmailTaken = errors.New("этот e-mail уже используется")
)

// AccountUseCase определяет бизнес-логику входа и регистрации
type AccountUseCase interface {
	// Login проверяет учетные данные и возвращает пользователя.
	// Возвращает ErrInvalidCredentials, если совпадения нет.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Register регистрирует нового пользователя.
	// Возвращает ErrEmailTaken, если email уже занят.
	Register(ctx context.Context, user *domain.User) error
}
