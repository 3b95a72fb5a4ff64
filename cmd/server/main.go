package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerlineroot "github.com/ledgerline/ledgerline"
	"github.com/ledgerline/ledgerline/internal/cache"
	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/handler"
	"github.com/ledgerline/ledgerline/internal/repository"
	"github.com/ledgerline/ledgerline/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(ledgerlineroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to redis
	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Initialize stores
	invoiceRepo := repository.NewInvoiceRepo(pool)
	customerRepo := repository.NewCustomerRepo(pool)
	userRepo := repository.NewUserRepo(pool)
	views := cache.NewViewCache(redisClient, config.ViewCacheTTL)
	sessions := cache.NewSessionStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, views)
	queryService := service.NewQueryService(invoiceRepo, customerRepo, views)
	authService := service.NewAuthService(userRepo)

	// Initialize handler and router
	h := handler.New(handler.Deps{
		Cfg:      cfg,
		Invoices: invoiceService,
		Queries:  queryService,
		Auth:     authService,
		Sessions: sessions,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.NewRouter(h),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown server", "error", err)
	}

	slog.Info("server stopped gracefully")
}
