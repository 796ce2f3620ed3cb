package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/jmoiron/sqlx"
)

// UserStorage реализует интерфейс ports.UserStorage поверх PostgreSQL
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// ValidateCredentials ищет пользователя с точным совпадением email и пароля.
// Возвращает (nil, nil), если совпадения нет.
func (s *UserStorage) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	query := `SELECT id, name, surname, email FROM users WHERE email = $1 AND password = $2 LIMIT 1`

	err := s.db.GetContext(ctx, &user, query, email, password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("credentials did not match any user", "email", email)
			return nil, nil
		}
		s.logger.Error("failed to validate credentials", "email", email, "error", err)
		return nil, fmt.Errorf("ошибка при проверке учетных данных: %w", err)
	}

	s.logger.Info("credentials validated",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// RegisterUser регистрирует нового пользователя.
// Сначала проверяет занятость email отдельным запросом, затем вставляет строку.
// Проверка и вставка не обернуты в транзакцию, поэтому при одновременной
// регистрации одного и того же email возможны дубликаты.
func (s *UserStorage) RegisterUser(ctx context.Context, user *domain.User) (bool, error) {
	start := time.Now()

	var existing int
	err := s.db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM users WHERE email = $1`, user.Email)
	if err != nil {
		s.logger.Error("failed to check existing email", "email", user.Email, "error", err)
		return false, fmt.Errorf("ошибка при проверке существующего email: %w", err)
	}
	if existing > 0 {
		s.logger.Warn("email already registered", "email", user.Email)
		return false, nil
	}

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (name, surname, email, password)
		VALUES (:name, :surname, :email, :password)
	`, user)
	if err != nil {
		s.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return false, fmt.Errorf("ошибка при регистрации пользователя: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при получении числа вставленных строк: %w", err)
	}

	s.logger.Info("user registered successfully",
		"email", user.Email,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return affected > 0, nil
}
