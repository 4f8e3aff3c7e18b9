// Package services содержит логику сессии сайта: восстановление при
// старте, регистрацию, вход и выход. Слот текущего профиля в хранилище —
// единственный источник истины о том, кто вошёл в систему; все мутации
// проходят через этот сервис.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lpxlsl/plasma-services/internal/entitlement"
	"github.com/lpxlsl/plasma-services/internal/lib/jwt"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	"github.com/lpxlsl/plasma-services/internal/models"
	"github.com/lpxlsl/plasma-services/internal/storage/localstore"
	"github.com/lpxlsl/plasma-services/internal/storage/repository"
)

// Роли, попадающие в claims токена сессии.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Ошибки валидации регистрации. Никакое состояние при них не изменяется.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameRequired = errors.New("username is required")
)

// ProfileRepository описывает контракт для работы со слотом текущего
// профиля и реестром.
type ProfileRepository interface {
	// GetCurrentProfile возвращает профиль текущей сессии или ErrProfileNotFound.
	GetCurrentProfile(ctx context.Context) (*models.Profile, error)
	// SaveCurrentProfile записывает профиль в слот текущей сессии.
	SaveCurrentProfile(ctx context.Context, profile models.Profile) error
	// ClearCurrentProfile очищает слот текущей сессии.
	ClearCurrentProfile(ctx context.Context) error
	// GetRegistryProfile возвращает запись реестра по имени или ErrProfileNotFound.
	GetRegistryProfile(ctx context.Context, username string) (*models.Profile, error)
	// UpsertRegistryProfile добавляет или замещает запись реестра.
	UpsertRegistryProfile(ctx context.Context, profile models.Profile) error
}

// SessionService отвечает за восстановление сессии, регистрацию, вход и выход.
type SessionService struct {
	repo     ProfileRepository
	jwtMaker jwt.Maker
	resolver *entitlement.Resolver
	log      *slog.Logger
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(repo ProfileRepository, jwtMaker jwt.Maker, resolver *entitlement.Resolver, log *slog.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		jwtMaker: jwtMaker,
		resolver: resolver,
		log:      log,
	}
}

// Restore читает слот текущей сессии при старте клиента.
// Пустой слот — это не ошибка: возвращается nil-профиль, клиент обязан
// показать окно входа. Испорченная запись выбрасывается из слота и тоже
// трактуется как отсутствие сессии.
func (s *SessionService) Restore(ctx context.Context) (*models.Profile, error) {
	profile, err := s.repo.GetCurrentProfile(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}
		if errors.Is(err, localstore.ErrCorruptValue) {
			s.log.Error("dropping corrupt profile record", sl.Err(err))
			if clearErr := s.repo.ClearCurrentProfile(ctx); clearErr != nil {
				s.log.Error("failed to clear corrupt profile slot", sl.Err(clearErr))
			}
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Register создаёт новый профиль и делает его текущей сессией.
// Пароль нигде не сохраняется и не проверяется при последующих входах —
// подтверждение сравнивается с паролем один раз, на этом проверка
// учётных данных у продукта заканчивается. Привилегированные имена
// регистрируются сразу с уровнем gold.
func (s *SessionService) Register(ctx context.Context, username, email, password, confirmPassword string) (*models.Profile, string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, "", ErrUsernameRequired
	}
	if password != confirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	tier := models.TierNone
	if s.resolver.IsPrivileged(username) {
		tier = models.TierGold
	}
	profile := models.Profile{
		UID:              uuid.NewString(),
		Username:         username,
		Email:            email,
		SubscriptionTier: tier,
		RegisteredAt:     time.Now().UTC(),
	}

	if err := s.repo.SaveCurrentProfile(ctx, profile); err != nil {
		return nil, "", err
	}
	if err := s.repo.UpsertRegistryProfile(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(profile.Username, s.Role(profile.Username))
	if err != nil {
		return nil, "", err
	}
	s.log.Info("registered new profile", slog.String("username", profile.Username), slog.String("tier", string(tier)))
	return &profile, token, nil
}

// Login открывает сессию для указанного имени. Имя принимается на веру,
// пароль не сверяется ни с чем. Если имя уже есть в реестре, слот текущей
// сессии указывает на эту запись; иначе новый профиль не создаётся и
// выдаётся только токен.
func (s *SessionService) Login(ctx context.Context, username string) (*models.Profile, string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, "", ErrUsernameRequired
	}

	token, err := s.jwtMaker.GenerateToken(username, s.Role(username))
	if err != nil {
		return nil, "", err
	}

	profile, err := s.repo.GetRegistryProfile(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			s.log.Info("login without registry record", slog.String("username", username))
			return nil, token, nil
		}
		return nil, "", err
	}

	if err := s.repo.SaveCurrentProfile(ctx, *profile); err != nil {
		return nil, "", err
	}
	s.log.Info("restored registry profile into session", slog.String("username", profile.Username))
	return profile, token, nil
}

// Logout очищает слот текущей сессии. Следующее восстановление после
// выхода обязано показать отсутствие сессии.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.repo.ClearCurrentProfile(ctx); err != nil {
		return err
	}
	s.log.Info("session cleared")
	return nil
}

// Role возвращает роль для claims токена: admin для привилегированных имён.
func (s *SessionService) Role(username string) string {
	if s.resolver.IsPrivileged(username) {
		return RoleAdmin
	}
	return RoleUser
}

// Badge возвращает бейдж для профиля текущей сессии.
func (s *SessionService) Badge(profile *models.Profile) *entitlement.Badge {
	if profile == nil {
		return nil
	}
	return s.resolver.Resolve(profile.SubscriptionTier, profile.Username)
}
