package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"darna/internal/config"
	"darna/internal/database"
	"darna/internal/ratelimit"
	"darna/internal/server"
	"darna/pkg/logger"
	"darna/pkg/mailer"
	"darna/pkg/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Dev: cfg.App.IsDev()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, database.Config{URL: cfg.Database.URL, MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	limiter, closeLimiter := buildLimiter(ctx, cfg, log)
	defer func() { _ = closeLimiter() }()

	srv, err := server.New(server.Dependencies{
		Config:  cfg,
		DB:      db,
		Logger:  log,
		Mailer:  buildMailer(cfg, log),
		Limiter: limiter,
		Storage: buildStorage(cfg, log),
	})
	if err != nil {
		return err
	}

	if err := srv.StartJobs(); err != nil {
		return err
	}

	httpServer := srv.HTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", httpServer.Addr), zap.String("env", cfg.App.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown started")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	srv.StopJobs(shutdownCtx)
	log.Info("shutdown complete")
	return nil
}

// buildLimiter prefers Redis so limits hold across replicas, and falls back
// to process memory when Redis is unset or unreachable.
func buildLimiter(ctx context.Context, cfg *config.Config, log *zap.Logger) (ratelimit.Limiter, func() error) {
	rl := cfg.RateLimit
	memory := func() (ratelimit.Limiter, func() error) {
		return ratelimit.NewMemoryLimiter(rl.LoginLimit, rl.Window), func() error { return nil }
	}

	if rl.Redis.Addr == "" {
		log.Info("rate limiter using process memory")
		return memory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rl.Redis.Addr,
		Password: rl.Redis.Password,
		DB:       rl.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Warn("redis rate limiter unavailable, falling back to memory", zap.Error(err))
		return memory()
	}

	return ratelimit.NewRedisLimiter(client, rl.LoginLimit, rl.Window, rl.Redis.Prefix), client.Close
}

func buildMailer(cfg *config.Config, log *zap.Logger) mailer.Mailer {
	if cfg.Mail.ResendAPIKey == "" {
		log.Warn("mail.resend_api_key not set, transactional mail disabled")
		return mailer.NopMailer{}
	}
	return mailer.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From, log)
}

func buildStorage(cfg *config.Config, log *zap.Logger) storage.Storage {
	if !cfg.Storage.Enabled() {
		log.Warn("storage.endpoint not set, avatar uploads disabled")
		return nil
	}

	store, err := storage.NewFactory().Create(&storage.S3Config{
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.Bucket,
		Region:          cfg.Storage.Region,
		PublicURL:       cfg.Storage.PublicURL,
		UsePathStyle:    cfg.Storage.UsePathStyle,
	})
	if err != nil {
		log.Error("object storage init failed, avatar uploads disabled", zap.Error(err))
		return nil
	}
	return store
}
