package server

import (
	"context"
	"fmt"
	"net/http"

	authrepo "darna/internal/auth/repository"
	authusecase "darna/internal/auth/usecase"
	"darna/internal/config"
	"darna/internal/database"
	"darna/internal/metrics"
	"darna/internal/ratelimit"
	userrepo "darna/internal/users/repository"
	userusecase "darna/internal/users/usecase"
	"darna/pkg/crypto"
	"darna/pkg/mailer"
	"darna/pkg/password"
	"darna/pkg/storage"
	"darna/pkg/token"
	"darna/pkg/uploadfiles"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Dependencies are the process-wide resources built in main.
type Dependencies struct {
	Config  *config.Config
	DB      database.Service
	Logger  *zap.Logger
	Mailer  mailer.Mailer
	Limiter ratelimit.Limiter
	// Storage may be nil, in which case avatar uploads are refused.
	Storage storage.Storage
}

type Server struct {
	cfg      *config.Config
	db       database.Service
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	limiter  ratelimit.Limiter

	auth      *authusecase.AuthService
	twoFactor *authusecase.TwoFactorService
	users     userusecase.UserUsecase

	jobs *cron.Cron
}

func New(d Dependencies) (*Server, error) {
	cfg := d.Config

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	sealer, err := crypto.NewSecretCipher(cfg.Security.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("secret cipher: %w", err)
	}

	hasher := password.NewBcryptHasher(cfg.Security.BcryptCost)
	issuer := token.NewIssuer(token.Config{
		AccessSecret:  []byte(cfg.JWT.AccessSecret),
		RefreshSecret: []byte(cfg.JWT.RefreshSecret),
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		Issuer:        cfg.JWT.Issuer,
	})

	authStore := authrepo.NewUserStore(d.DB)
	twoFactor := authusecase.NewTwoFactorService(authStore, sealer, d.Mailer, m, d.Logger, cfg.Security.TOTPIssuer)
	auth := authusecase.NewAuthService(authusecase.Dependencies{
		Repo:      authStore,
		Hasher:    hasher,
		Issuer:    issuer,
		TwoFactor: twoFactor,
		Denylist:  newDenylist(cfg.Security.DenylistSize, d.Logger),
		Mailer:    d.Mailer,
		Metrics:   m,
		Logger:    d.Logger,
	})

	users := userusecase.NewUserUsecase(
		userrepo.NewUserStore(d.DB),
		hasher,
		auth,
		uploadfiles.NewUploader(d.Storage),
		d.Mailer,
		d.Logger,
	)

	return &Server{
		cfg:       cfg,
		db:        d.DB,
		log:       d.Logger,
		registry:  registry,
		metrics:   m,
		limiter:   d.Limiter,
		auth:      auth,
		twoFactor: twoFactor,
		users:     users,
		jobs:      cron.New(),
	}, nil
}

func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.HTTP.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}
}

// StartJobs schedules background maintenance. Call StopJobs on shutdown.
func (s *Server) StartJobs() error {
	if _, err := s.jobs.AddFunc(s.cfg.Jobs.PurgeSchedule, s.purgeRefreshTokens); err != nil {
		return fmt.Errorf("schedule refresh token purge: %w", err)
	}
	s.jobs.Start()
	return nil
}

// StopJobs waits for running jobs to finish or ctx to expire.
func (s *Server) StopJobs(ctx context.Context) {
	done := s.jobs.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("background jobs did not stop in time")
	}
}

func (s *Server) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	n, err := s.auth.Ledger().Purge(ctx, s.cfg.Jobs.PurgeRetention)
	if err != nil {
		s.log.Error("refresh token purge failed", zap.Error(err))
		return
	}
	s.log.Info("refresh tokens purged", zap.Int64("count", n))
}

func newDenylist(size int, log *zap.Logger) *authusecase.CacheDenylist {
	return authusecase.NewCacheDenylist(size, nil).OnPrematureEviction(func(tokenID string) {
		log.Warn("logged out access token evicted from denylist before expiry, raise security.denylist_size",
			zap.String("jti", tokenID), zap.Int("size", size))
	})
}
