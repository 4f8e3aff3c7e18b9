// Package plasma собирает сервис сайта PlasmaServices: хранилище,
// кеш, сервисы и HTTP-сервер с корректным завершением.
package plasma

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/lpxlsl/plasma-services/internal/cache"
	"github.com/lpxlsl/plasma-services/internal/config"
	"github.com/lpxlsl/plasma-services/internal/entitlement"
	"github.com/lpxlsl/plasma-services/internal/lib/jwt"
	adminservice "github.com/lpxlsl/plasma-services/internal/services/admin"
	downloadservice "github.com/lpxlsl/plasma-services/internal/services/download"
	sessionservice "github.com/lpxlsl/plasma-services/internal/services/session"
	statsservice "github.com/lpxlsl/plasma-services/internal/services/stats"
	"github.com/lpxlsl/plasma-services/internal/storage/localstore"
	"github.com/lpxlsl/plasma-services/internal/storage/repository"

	"github.com/prometheus/client_golang/prometheus"
)

// App держит собранный сервер и его зависимости.
type App struct {
	server          *http.Server
	logger          *slog.Logger
	stats           *statsservice.StatsService
	refreshInterval time.Duration
}

// New собирает приложение по конфигу: открывает файловое хранилище,
// подключает кеш (redis либо заглушка при пустом адресе), создаёт
// сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := localstore.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	repo := repository.New(store)

	var usersCache adminservice.Cache = cache.Noop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		usersCache = redisCache
	} else {
		logger.Info("redis address is empty, running without cache")
	}

	resolver := entitlement.NewResolver(cfg.Admins)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	sessionSvc := sessionservice.NewSessionService(repo, jwtMaker, resolver, logger)
	adminSvc := adminservice.NewAdminService(repo, usersCache, resolver, logger)
	statsSvc := statsservice.NewStatsService(repo, prometheus.DefaultRegisterer, logger)
	downloadSvc := downloadservice.NewDownloadService(cfg.Links, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, sessionSvc, adminSvc, statsSvc, downloadSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:          srv,
		logger:          logger,
		stats:           statsSvc,
		refreshInterval: cfg.RefreshInterval,
	}, nil
}

// Run запускает фоновый пересчёт метрик и HTTP-сервер, завершает оба
// по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	go a.stats.Run(ctx, a.refreshInterval)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
