// Package auth содержит бизнес-логику регистрации, аутентификации и
// обновления токенов. Сырой пароль не покидает пределов этого пакета:
// в хранилище и журналы попадает только bcrypt‑хэш.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/password"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/metrics"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Store описывает контракт хранилища для операций аутентификации.
type Store interface {
	// RegisterAccount атомарно создаёт пользователя, подписку и строку потребления.
	RegisterAccount(ctx context.Context, user models.User, planTier string, now time.Time) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или repository.ErrNoRows.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// CreateAuditLog пишет запись журнала аудита.
	CreateAuditLog(ctx context.Context, entry models.AuditLog) error
}

// EventPublisher публикует доменные события во внешнюю шину. Может быть nil,
// тогда публикация пропускается.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// RegisterInput — входные данные операции регистрации.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	PlanTier    string // FREE, PRO или PREMIUM; сравнение строгое, без дефолта на FREE
	AccountType string // INDIVIDUAL или ORGANIZATION
}

// TokenPair — пара выпущенных токенов.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service отвечает за регистрацию, авторизацию и обновление JWT.
type Service struct {
	store    Store
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
	}
}

// Register создаёт учётную запись: проверяет стойкость пароля, нормализует
// email, хэширует пароль и выполняет атомарную транзакцию регистрации.
// План подбирается строго по (tier, INDIVIDUAL), отсутствие плана — жёсткая
// ошибка, а не откат к FREE.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := password.ValidateStrength(in.Password); err != nil {
		return nil, err
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        NormalizeEmail(in.Email),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
		IsActive:     true,
	}

	created, err := s.store.RegisterAccount(ctx, user, in.PlanTier, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.publish(ctx, "user.registered", map[string]any{
		"user_id":  created.ID,
		"email":    created.Email,
		"username": created.Username,
	})
	return created, nil
}

// Login проверяет учётные данные и выпускает пару токенов. Несуществующий,
// неактивный пользователь и неверный пароль дают один и тот же отказ
// InvalidCredentials, чтобы по ответу нельзя было перечислять учётные записи.
func (s *Service) Login(ctx context.Context, email, rawPassword, ip string) (*TokenPair, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, nil, apperr.InvalidCredentials()
		}
		return nil, nil, err
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, apperr.InvalidCredentials()
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, apperr.InvalidCredentials()
	}

	identity := jwt.Identity{
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		UserID:   user.ID,
	}
	access, err := s.jwtMaker.GenerateAccessToken(identity)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.jwtMaker.GenerateRefreshToken(identity)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if err := s.store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now

	// Провал записи аудита не должен ломать успешный вход.
	var ipPtr *string
	if ip != "" {
		ipPtr = &ip
	}
	if err := s.store.CreateAuditLog(ctx, models.AuditLog{
		UserID:       &user.ID,
		Action:       models.ActionLogin,
		ResourceType: "user",
		ResourceID:   &user.ID,
		IPAddress:    ipPtr,
	}); err != nil {
		s.log.Warn("failed to write login audit log", sl.Err(err))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.publish(ctx, "user.login", map[string]any{"user_id": user.ID})

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh проверяет refresh токен и выпускает новый access токен для той же
// личности. Refresh токен не ротируется. Любой дефект токена — просроченный,
// повреждённый, неверного типа — даёт InvalidCredentials.
func (s *Service) Refresh(_ context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(refreshToken)
	if err != nil {
		return "", apperr.InvalidCredentials()
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return "", apperr.InvalidCredentials()
	}

	return s.jwtMaker.GenerateAccessToken(jwt.Identity{
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
		UserID:   claims.UserID,
	})
}

// ValidateToken проверяет access токен и возвращает его claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// NormalizeEmail приводит email к каноническому виду для сравнения и хранения.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, payload); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", key), sl.Err(err))
	}
}
