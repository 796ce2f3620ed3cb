package main

import (
	"context"
	"flag"
	"os"

	"github.com/GoArmGo/ShopApp/internal/di"
	"github.com/GoArmGo/ShopApp/internal/logger"
)

func main() {

	mode := flag.String("mode", "server", "Режим запуска приложения: server или worker")
	flag.Parse()

	// bootstrap-логгер используется только на этапе инициализации,
	// пока основной логгер еще не создан из конфигурации
	bootstrapLogger := logger.NewBootstrap()
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	application, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	slog := application.LoggerIns()

	if err := application.Run(ctx, mode); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("application stopped gracefully")
}
