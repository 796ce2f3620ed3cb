package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URL-префикс, под которым раздаются сохраненные изображения.
const urlPrefix = "/images/"

// Storage реализует ports.FileStorage поверх локальной директории изображений.
type Storage struct {
	dir    string
	logger *slog.Logger
}

// NewStorage создает файловое хранилище в указанной директории,
// создавая её при необходимости.
func NewStorage(dir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории изображений %s: %w", dir, err)
	}
	return &Storage{dir: dir, logger: logger}, nil
}

// SaveUpload сохраняет загруженный файл под случайным уникальным именем,
// сохраняя расширение оригинала, и возвращает относительный URL.
func (s *Storage) SaveUpload(ctx context.Context, originalName string, reader io.Reader) (string, error) {
	fileName := uuid.New().String() + filepath.Ext(originalName)
	fullPath := filepath.Join(s.dir, fileName)

	dst, err := os.Create(fullPath)
	if err != nil {
		s.logger.Error("failed to create image file", "path", fullPath, "error", err)
		return "", fmt.Errorf("ошибка создания файла изображения: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, reader)
	if err != nil {
		s.logger.Error("failed to write image file", "path", fullPath, "error", err)
		return "", fmt.Errorf("ошибка записи файла изображения: %w", err)
	}

	s.logger.Info("image saved", "file", fileName, "bytes", written)
	return urlPrefix + fileName, nil
}

// Delete удаляет файл по его относительному URL.
// Отсутствие файла не считается ошибкой.
func (s *Storage) Delete(ctx context.Context, imageURL string) error {
	fileName := strings.TrimPrefix(imageURL, urlPrefix)
	if fileName == "" {
		return nil
	}
	// Защита от выхода за пределы директории изображений
	fileName = filepath.Base(fileName)

	fullPath := filepath.Join(s.dir, fileName)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Error("failed to delete image file", "path", fullPath, "error", err)
		return fmt.Errorf("ошибка удаления файла изображения: %w", err)
	}

	s.logger.Info("image deleted", "file", fileName)
	return nil
}
