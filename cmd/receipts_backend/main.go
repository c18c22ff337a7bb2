package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/codify-lk/receipts_backend/internal/adapters/kvstore"
	"github.com/codify-lk/receipts_backend/internal/adapters/receiptstore"
	portsrepo "github.com/codify-lk/receipts_backend/internal/core/ports/repositories"
	"github.com/codify-lk/receipts_backend/internal/core/services"
	"github.com/codify-lk/receipts_backend/internal/handlers"
	"github.com/codify-lk/receipts_backend/internal/middleware"
	"github.com/codify-lk/receipts_backend/internal/platform/config"
	"github.com/codify-lk/receipts_backend/pkg/email"
	"github.com/codify-lk/receipts_backend/pkg/pdfgen"
)

// @title Receipts Backend API
// @version 1.0
// @description Receipt creation, payment tracking and delivery service.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	kv, cleanup, err := buildKVStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	receiptRepo := receiptstore.NewRepository(kv, cfg.ReceiptsKey, logger)
	repos := portsrepo.RepositoryProvider{ReceiptRepo: receiptRepo}

	renderer := pdfgen.NewRenderer(cfg.BusinessName, cfg.CurrencyCode)
	mailer := email.NewMailer(cfg.Email, cfg.BusinessName, cfg.CurrencyCode)

	serviceContainer := services.NewServiceContainer(cfg, repos, renderer, mailer)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	r.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildKVStore selects the persistence backend from config. The cleanup
// func closes whatever the backend holds open.
func buildKVStore(cfg *config.Config, logger *slog.Logger) (portsrepo.KVStore, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		store := kvstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(context.Background()); err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to redis", slog.String("addr", cfg.RedisAddr))
		return store, func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("Error closing redis connection", slog.String("error", cerr.Error()))
			}
		}, nil
	case config.BackendMemory:
		logger.Warn("Using in-memory storage; data will not survive restarts")
		return kvstore.NewMemoryStore(), func() {}, nil
	default:
		logger.Info("Using file storage", slog.String("path", cfg.DataFile))
		return kvstore.NewFileStore(cfg.DataFile), func() {}, nil
	}
}
