// Package organization содержит бизнес-логику организаций: создание
// с корпоративной подпиской, управление участниками и проверку прав.
package organization

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Store описывает контракт хранилища для операций над организациями.
type Store interface {
	CreateOrganizationWithOwner(ctx context.Context, org models.Organization, ownerID, planTier string, now time.Time) (*models.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetMemberRole(ctx context.Context, organizationID, userID string) (string, error)
	AddOrganizationMember(ctx context.Context, organizationID, userID, role string) error
	ListOrganizationMembers(ctx context.Context, organizationID string) ([]models.OrganizationMember, error)
	CountMembers(ctx context.Context, organizationID string) (int, error)
	GetActivePlanForOrganization(ctx context.Context, organizationID string) (*models.Plan, error)
}

// Service реализует операции над организациями.
type Service struct {
	store Store
}

// New создает новый экземпляр Service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Create создаёт организацию с создателем в роли OWNER и корпоративной
// подпиской на указанный план. Занятый slug — доменная ошибка AlreadyExists.
func (s *Service) Create(ctx context.Context, name, slug, planTier, ownerID string) (*models.Organization, error) {
	return s.store.CreateOrganizationWithOwner(ctx, models.Organization{
		Name: name,
		Slug: slug,
	}, ownerID, planTier, time.Now().UTC())
}

// AddMember добавляет пользователя в организацию. Право на операцию имеют
// только OWNER и ADMIN; лимит участников плана проверяется до вставки,
// а уникальность пары (организация, пользователь) охраняет база.
func (s *Service) AddMember(ctx context.Context, slug, actorID, username, role string) (*models.OrganizationMember, error) {
	org, err := s.store.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.OrganizationNotFound(slug)
		}
		return nil, err
	}

	actorRole, err := s.store.GetMemberRole(ctx, org.ID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.Unauthorized("")
		}
		return nil, err
	}
	if actorRole != models.MemberOwner && actorRole != models.MemberAdmin {
		return nil, apperr.Unauthorized("")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.UserNotFound()
		}
		return nil, err
	}

	plan, err := s.store.GetActivePlanForOrganization(ctx, org.ID)
	if err != nil && !errors.Is(err, repository.ErrNoRows) {
		return nil, err
	}
	if plan != nil && plan.MaxMembers != nil {
		count, err := s.store.CountMembers(ctx, org.ID)
		if err != nil {
			return nil, err
		}
		if count >= *plan.MaxMembers {
			return nil, apperr.QuotaExceeded("members", *plan.MaxMembers)
		}
	}

	if err := s.store.AddOrganizationMember(ctx, org.ID, user.ID, role); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.MemberAlreadyExists(username)
		}
		return nil, err
	}

	return &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           role,
	}, nil
}

// ListMembers возвращает участников организации. Список доступен любому её участнику.
func (s *Service) ListMembers(ctx context.Context, slug, actorID string) ([]models.OrganizationMember, error) {
	org, err := s.store.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.OrganizationNotFound(slug)
		}
		return nil, err
	}

	if _, err := s.store.GetMemberRole(ctx, org.ID, actorID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.Unauthorized("")
		}
		return nil, err
	}

	return s.store.ListOrganizationMembers(ctx, org.ID)
}
