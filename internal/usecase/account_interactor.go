package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShopApp/internal/core/ports"
	"github.com/GoArmGo/ShopApp/internal/domain"
)

// accountUseCase implements AccountUseCase
type accountUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

// NewAccountUseCase создает новый экземпляр AccountUseCase
func NewAccountUseCase(userStorage ports.UserStorage, logger *slog.Logger) AccountUseCase {
	return &accountUseCase{
		userStorage: userStorage,
		logger:      logger,
	}
}

// Login проверяет учетные данные через хранилище пользователей.
// Сравнение пароля выполняется точным совпадением с сохранённым значением.
func (uc *accountUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userStorage.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке учетных данных: %w", err)
	}
	if user == nil {
		uc.logger.Warn("login attempt failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// Register регистрирует нового пользователя.
// Проверка занятости email и вставка выполняются хранилищем
// двумя отдельными запросами.
func (uc *accountUseCase) Register(ctx context.Context, user *domain.User) error {
	ok, err := uc.userStorage.RegisterUser(ctx, user)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при регистрации пользователя: %w", err)
	}
	if !ok {
		return ErrEmailTaken
	}

	uc.logger.Info("user registered", "email", user.Email)
	return nil
}
