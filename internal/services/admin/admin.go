// Package services содержит логику админ-панели: просмотр реестра
// пользователей и изменение уровней подписки. Право на обе операции
// определяется списком привилегированных имён, а не данными профиля.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lpxlsl/plasma-services/internal/entitlement"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	"github.com/lpxlsl/plasma-services/internal/models"
	"github.com/lpxlsl/plasma-services/internal/storage/repository"
)

const usersCacheKey = "admin:users"

// Ошибки авторизации админ-операций.
var (
	// ErrForbidden означает, что действующее имя не привилегировано.
	ErrForbidden = errors.New("access denied")
	// ErrTargetProtected означает попытку изменить привилегированный профиль,
	// в том числе собственный.
	ErrTargetProtected = errors.New("target profile is protected")
)

// RegistryRepository определяет методы для работы с реестром и слотом
// текущей сессии, нужные админ-панели.
type RegistryRepository interface {
	// ListRegistryProfiles возвращает реестр в порядке добавления.
	ListRegistryProfiles(ctx context.Context) ([]models.Profile, error)
	// GetRegistryProfile возвращает запись реестра по имени или ErrProfileNotFound.
	GetRegistryProfile(ctx context.Context, username string) (*models.Profile, error)
	// UpsertRegistryProfile добавляет или замещает запись реестра.
	UpsertRegistryProfile(ctx context.Context, profile models.Profile) error
	// GetCurrentProfile возвращает профиль текущей сессии или ErrProfileNotFound.
	GetCurrentProfile(ctx context.Context) (*models.Profile, error)
	// SaveCurrentProfile записывает профиль в слот текущей сессии.
	SaveCurrentProfile(ctx context.Context, profile models.Profile) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UserRow — строка списка пользователей с вычисленным бейджем.
type UserRow struct {
	models.Profile
	Badge *entitlement.Badge `json:"badge,omitempty"`
}

// Listing — ответ списка пользователей: строки и количество по уровням,
// как их показывают карточки админ-панели.
type Listing struct {
	Users  []UserRow           `json:"users"`
	Totals map[models.Tier]int `json:"totals"`
}

// AdminService реализует операции админ-панели.
type AdminService struct {
	repo     RegistryRepository
	cache    Cache
	resolver *entitlement.Resolver
	log      *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo RegistryRepository, cache Cache, resolver *entitlement.Resolver, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:     repo,
		cache:    cache,
		resolver: resolver,
		log:      log,
	}
}

// ListUsers возвращает реестр для админ-панели. Действующее имя обязано
// быть привилегированным. Пустой реестр при открытой сессии выдаёт список
// из одного текущего профиля, чтобы панель не была пустой на устройстве,
// где регистрация прошла до появления реестра.
func (s *AdminService) ListUsers(ctx context.Context, actor string) (*Listing, error) {
	if !s.resolver.IsPrivileged(actor) {
		return nil, ErrForbidden
	}

	var profiles []models.Profile
	found, err := s.cache.Get(usersCacheKey, &profiles)
	if err != nil {
		s.log.Warn("failed to read users from cache", sl.Err(err))
		found = false
	}
	if !found {
		profiles, err = s.repo.ListRegistryProfiles(ctx)
		if err != nil {
			return nil, err
		}
		if len(profiles) == 0 {
			if current, currErr := s.repo.GetCurrentProfile(ctx); currErr == nil {
				profiles = []models.Profile{*current}
			}
		}
		if err := s.cache.Set(usersCacheKey, profiles, time.Minute); err != nil {
			s.log.Warn("failed to cache users listing", sl.Err(err))
		}
	}

	listing := &Listing{
		Users: make([]UserRow, 0, len(profiles)),
		Totals: map[models.Tier]int{
			models.TierNone:   0,
			models.TierBasic:  0,
			models.TierSilver: 0,
			models.TierGold:   0,
		},
	}
	for _, p := range profiles {
		listing.Users = append(listing.Users, UserRow{
			Profile: p,
			Badge:   s.resolver.Resolve(p.SubscriptionTier, p.Username),
		})
		listing.Totals[p.SubscriptionTier]++
	}
	return listing, nil
}

// UpdateTier меняет уровень подписки записи реестра. Действующее имя
// обязано быть привилегированным, привилегированные записи не редактируются.
// Дата подписки ставится в момент правки при переходе на платный уровень
// и сбрасывается при возврате на none. Если цель совпадает с текущей
// сессией, слот сессии обновляется тем же значением, чтобы оба хранилища
// остались согласованными.
func (s *AdminService) UpdateTier(ctx context.Context, actor, target string, tier models.Tier) (*models.Profile, error) {
	if !s.resolver.IsPrivileged(actor) {
		return nil, ErrForbidden
	}
	if s.resolver.IsPrivileged(target) {
		return nil, ErrTargetProtected
	}

	profile, err := s.repo.GetRegistryProfile(ctx, target)
	if err != nil {
		return nil, err
	}

	profile.SubscriptionTier = tier
	if tier == models.TierNone {
		profile.SubscriptionDate = nil
	} else {
		now := time.Now().UTC()
		profile.SubscriptionDate = &now
	}

	if err := s.repo.UpsertRegistryProfile(ctx, *profile); err != nil {
		return nil, err
	}

	current, err := s.repo.GetCurrentProfile(ctx)
	if err == nil && current.SameUsername(target) {
		if err := s.repo.SaveCurrentProfile(ctx, *profile); err != nil {
			return nil, err
		}
	} else if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		s.log.Warn("failed to read current profile during tier update", sl.Err(err))
	}

	if err := s.cache.Invalidate(usersCacheKey); err != nil {
		s.log.Warn("failed to invalidate users cache", sl.Err(err))
	}

	s.log.Info("updated subscription tier",
		slog.String("actor", actor),
		slog.String("target", profile.Username),
		slog.String("tier", string(tier)))
	return profile, nil
}
