package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medstore/m/internal/api"
	"medstore/m/internal/auth"
	"medstore/m/internal/billing"
	"medstore/m/internal/config"
	"medstore/m/internal/database"
	"medstore/m/internal/logger"
	"medstore/m/internal/metrics"
	"medstore/m/internal/migrations"
	"medstore/m/internal/ratelimit"
	"medstore/m/internal/seed"
	"medstore/m/internal/store"
	"medstore/m/internal/views"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	zlog, err := logger.New(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "medstore",
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return err
	}
	st := store.New(db)
	if _, err := seed.LoadMedicines(ctx, st, cfg.CatalogCSV, zlog); err != nil {
		zlog.Warn("medicine catalog not loaded", zap.Error(err))
	}

	renderer, err := views.New()
	if err != nil {
		return err
	}

	m := metrics.New("medstore")
	var counter ratelimit.Counter
	if client := ratelimit.Connect(ctx, cfg.RedisAddr, zlog); client != nil {
		defer client.Close()
		counter = client
	}

	var authenticator *auth.Authenticator
	if cfg.AuthEnabled() {
		authenticator = auth.New(cfg.AdminUser, cfg.AdminHash, cfg.Secret, 12*time.Hour)
	}

	handler := api.New(st, billing.NewService(st, m), renderer, api.Options{
		StoreName:      cfg.StoreName,
		AllowedOrigins: cfg.Origins(),
		Auth:           authenticator,
		Metrics:        m,
		Limiter:        ratelimit.New(counter, cfg.RateLimit, time.Minute, zlog),
		Logger:         zlog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("medstore server starting",
			zap.String("port", cfg.HTTPPort),
			zap.String("driver", database.DriverName(cfg.DatabaseDSN)),
			zap.Bool("auth", cfg.AuthEnabled()),
			zap.Bool("rate_limit", counter != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
