// Package ragdocs предоставляет маршруты для основного приложения.
package ragdocs

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/ragdocs-backend/docs"
	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
	adminoverview "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/admin/overview"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/auth/register"
	documentcreate "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/document/create"
	documentlist "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/document/list"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/organization/addmember"
	organizationcreate "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/organization/create"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/organization/members"
	planlist "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/plan/list"
	querycreate "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/query/create"
	querylist "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/query/list"
	usageread "github.com/magabrotheeeer/ragdocs-backend/internal/http/handlers/usage/read"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	adminservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/admin"
	authservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/auth"
	documentservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/document"
	organizationservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/organization"
	planservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/plan"
	queryservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/query"
	usageservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/usage"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Services объединяет сервисы, необходимые для регистрации маршрутов.
type Services struct {
	Auth         *authservice.Service
	Plan         *planservice.Service
	Document     *documentservice.Service
	Query        *queryservice.Service
	Usage        *usageservice.Service
	Organization *organizationservice.Service
	Admin        *adminservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, db *repository.Storage, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.Metrics,
	)

	rateLimiter := middlewarectx.NewRateLimiter(10, 20)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth, cfg.AuthCookies, cfg.JWTToken).ServeHTTP)
		r.Post("/logout", logout.New(logger, cfg.AuthCookies).ServeHTTP)
		r.Post("/refresh-token", refresh.New(logger, svc.Auth, cfg.AuthCookies, cfg.JWTToken).ServeHTTP)
		r.Get("/plans", planlist.New(logger, svc.Plan).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, cfg.AuthCookies.AccessCookieName, logger))
			r.Use(rateLimiter.Middleware)
			r.Post("/documents", documentcreate.New(logger, svc.Document).ServeHTTP)
			r.Get("/documents", documentlist.New(logger, svc.Document).ServeHTTP)
			r.Post("/queries", querycreate.New(logger, svc.Query).ServeHTTP)
			r.Get("/queries", querylist.New(logger, svc.Query).ServeHTTP)
			r.Get("/usage", usageread.New(logger, svc.Usage).ServeHTTP)
			r.Post("/organizations", organizationcreate.New(logger, svc.Organization).ServeHTTP)
			r.Post("/organizations/{slug}/members", addmember.New(logger, svc.Organization).ServeHTTP)
			r.Get("/organizations/{slug}/members", members.New(logger, svc.Organization).ServeHTTP)
			r.Get("/admin/overview", adminoverview.New(logger, svc.Admin).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
