package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/ShopApp/internal/config"
	"github.com/GoArmGo/ShopApp/internal/handler"
	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/GoArmGo/ShopApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер приложения
func runServer(
	ctx context.Context,
	cfg *config.Config,
	accountUseCase usecase.AccountUseCase,
	productUseCase usecase.ProductUseCase,
	sessions *session.Store,
	logger *slog.Logger,
) error {
	accountHandler := handler.NewAccountHandler(accountUseCase, productUseCase, sessions, logger)
	homeHandler := handler.NewHomeHandler(productUseCase, sessions, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/Home/Index", http.StatusSeeOther)
	})

	r.Get("/Account/Login", accountHandler.ShowLogin)
	r.Post("/Account/Login", accountHandler.Login)
	r.Post("/Account/Register", accountHandler.Register)
	r.Post("/Account/Logout", accountHandler.Logout)

	r.Get("/Home/Index", homeHandler.Index)
	r.Post("/Home/AddProduct", homeHandler.AddProduct)
	r.Post("/Home/DeleteProduct", homeHandler.DeleteProduct)
	r.Post("/Home/UpdateProduct", homeHandler.UpdateProduct)

	// Отдача сохраненных изображений из директории IMAGES_DIR
	imageServer := http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir)))
	r.Get("/images/*", imageServer.ServeHTTP)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// Фоновая очистка истекших сессий живет, пока живет сервер
	sessions.StartJanitor(ctx.Done())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
