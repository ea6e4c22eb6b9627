package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KeshavWanjale/usercrud/internal/database"
	"github.com/KeshavWanjale/usercrud/internal/infrastructure/config"
	"github.com/KeshavWanjale/usercrud/internal/server"
	"github.com/KeshavWanjale/usercrud/internal/telemetry"
	"github.com/KeshavWanjale/usercrud/internal/users"
	"github.com/KeshavWanjale/usercrud/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Tracing:     cfg.Telemetry.TracingEnabled,
	})
	if err != nil {
		zapLogger.Fatal("Failed to set up telemetry", zap.Error(err))
	}

	db, err := database.Open(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := users.Migrate(db); err != nil {
			zapLogger.Fatal("Failed to migrate users table", zap.Error(err))
		}
	}

	// Schedule DB pool metrics collection
	go database.CollectPoolStats(ctx, db, cfg.Database.Driver, cfg.Database.StatsInterval, zapLogger)

	store := users.NewStore(logger.Slog(zapLogger.Named("store")), db)
	apiServer := server.NewServer(cfg, zapLogger, db, users.NewHandler(store, zapLogger))

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	select {
	case <-ctx.Done():
		zapLogger.Info("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			zapLogger.Error("API server stopped", zap.Error(err))
		}
	}

	if err := apiServer.Shutdown(context.Background()); err != nil {
		zapLogger.Error("Failed to shut down API server", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		zapLogger.Error("Failed to close database", zap.Error(err))
	}
	if err := shutdownTelemetry(context.Background()); err != nil {
		zapLogger.Error("Failed to flush telemetry", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
