package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pennywise-app/pennywise_backend/cmd/docs"
	"github.com/pennywise-app/pennywise_backend/internal/core/services"
	"github.com/pennywise-app/pennywise_backend/internal/handlers"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
	"github.com/pennywise-app/pennywise_backend/internal/repositories/database/pgsql"
	"github.com/pennywise-app/pennywise_backend/internal/utils"
	"github.com/pennywise-app/pennywise_backend/pkg/config"
	"github.com/pennywise-app/pennywise_backend/pkg/database"
)

// @title           Pennywise API
// @version         1.0
// @description     Multi-tenant personal finance tracker with a balance-consistent ledger.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPGSQLPool(ctx, cfg.PGSQLURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(pool, "migrations", logger); err != nil {
		return err
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	repos := pgsql.NewRepositoryProvider(pool)
	svcs := services.NewServiceContainer(repos, cfg)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestLoggerMiddleware(logger))
	router.Use(middleware.PosthogMiddleware(posthogClient))

	handlers.RegisterHandlers(router, svcs, cfg)

	if !cfg.IsProduction {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
