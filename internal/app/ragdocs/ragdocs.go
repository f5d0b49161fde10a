// Package ragdocs собирает приложение: хранилище, миграции, кэш,
// брокер событий, сервисы и HTTP-сервер с graceful shutdown.
package ragdocs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/ragdocs-backend/internal/cache"
	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/migrations"
	"github.com/magabrotheeeer/ragdocs-backend/internal/rabbitmq"
	adminservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/admin"
	authservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/auth"
	documentservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/document"
	organizationservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/organization"
	planservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/plan"
	queryservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/query"
	usageservice "github.com/magabrotheeeer/ragdocs-backend/internal/services/usage"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// App держит HTTP-сервер и ресурсы, требующие закрытия при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	rabbit *rabbitmq.Publisher
}

// New создает приложение: подключается к базе, накатывает миграции,
// поднимает кэш и (опционально) брокер событий, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер необязателен: без RabbitURL события просто не публикуются.
	var rabbit *rabbitmq.Publisher
	var events authservice.EventPublisher
	if cfg.RabbitURL != "" {
		rabbit, err = rabbitmq.Connect(cfg.RabbitURL, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		events = rabbit
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.AccessTTL, cfg.JWTToken.RefreshTTL)

	authService := authservice.New(db, jwtMaker, events, logger)
	planService := planservice.New(db, cacheRedis, logger)
	documentService := documentservice.New(db)
	queryService := queryservice.New(db)
	usageService := usageservice.New(db)
	organizationService := organizationservice.New(db)
	adminService := adminservice.New(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, Services{
		Auth:         authService,
		Plan:         planService,
		Document:     documentService,
		Query:        queryService,
		Usage:        usageService,
		Organization: organizationService,
		Admin:        adminService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		rabbit: rabbit,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста либо
// ошибки сервера. При отмене выполняет graceful shutdown и закрывает
// соединения с базой и брокером.
func (a *App) Run(ctx context.Context) error {
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
		err := a.server.Shutdown(timeoutCtx)
		if a.rabbit != nil {
			if cerr := a.rabbit.Close(); cerr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(cerr))
			}
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database connection", sl.Err(cerr))
		}
		return err
	}
}
