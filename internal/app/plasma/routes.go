// Package plasma предоставляет маршруты для основного приложения.
package plasma

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lpxlsl/plasma-services/internal/http/handlers/admin/listusers"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/admin/updatetier"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/auth/login"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/auth/logout"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/auth/register"
	downloadcheck "github.com/lpxlsl/plasma-services/internal/http/handlers/download/check"
	downloadlinks "github.com/lpxlsl/plasma-services/internal/http/handlers/download/links"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/health"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/session/current"
	"github.com/lpxlsl/plasma-services/internal/http/handlers/tiers"
	viewsread "github.com/lpxlsl/plasma-services/internal/http/handlers/views/read"
	viewsrecord "github.com/lpxlsl/plasma-services/internal/http/handlers/views/record"
	"github.com/lpxlsl/plasma-services/internal/http/middlewarectx"
	"github.com/lpxlsl/plasma-services/internal/lib/jwt"
	adminservice "github.com/lpxlsl/plasma-services/internal/services/admin"
	downloadservice "github.com/lpxlsl/plasma-services/internal/services/download"
	sessionservice "github.com/lpxlsl/plasma-services/internal/services/session"
	statsservice "github.com/lpxlsl/plasma-services/internal/services/stats"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	sessionService *sessionservice.SessionService,
	adminService *adminservice.AdminService,
	statsService *statsservice.StatsService,
	downloadService *downloadservice.DownloadService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, sessionService).ServeHTTP)
		r.Post("/login", login.New(logger, sessionService).ServeHTTP)
		r.Get("/session", current.New(logger, sessionService).ServeHTTP)
		r.Get("/tiers", tiers.New(logger).ServeHTTP)
		r.Get("/links", downloadlinks.New(logger, downloadService).ServeHTTP)
		r.Post("/download/check", downloadcheck.New(logger, downloadService).ServeHTTP)
		r.Get("/views", viewsread.New(logger, statsService).ServeHTTP)
		r.Post("/views", viewsrecord.New(logger, statsService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, sessionService).ServeHTTP)

			// Админ-панель
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/admin/users", listusers.New(logger, adminService).ServeHTTP)
				r.Put("/admin/users/{username}/subscription", updatetier.New(logger, adminService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
