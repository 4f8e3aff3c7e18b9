// Package repository реализует хранилище профилей поверх локального
// файлового key/value-хранилища. Раскладка слотов повторяет раскладку
// клиентского хранилища сайта: единственный слот текущего профиля,
// реестр всех профилей и счётчик просмотров.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lpxlsl/plasma-services/internal/models"
	"github.com/lpxlsl/plasma-services/internal/storage/localstore"
)

// Имена слотов в хранилище.
const (
	keyCurrentProfile = "currentProfile"
	keyAllProfiles    = "allProfiles"
	keyViewCounter    = "viewCounter"
)

// ErrProfileNotFound возвращается, когда запрошенный профиль отсутствует:
// пустой слот текущего профиля или незнакомое имя в реестре.
var ErrProfileNotFound = errors.New("profile not found")

// Storage инкапсулирует доступ к слотам профилей.
// Мьютекс сериализует последовательности чтение-изменение-запись над
// реестром и счётчиком, отдельные операции хранилища атомарны сами по себе.
type Storage struct {
	store *localstore.Store
	mu    sync.Mutex
}

// New создаёт Storage поверх открытого хранилища.
func New(store *localstore.Store) *Storage {
	return &Storage{store: store}
}

// GetCurrentProfile возвращает профиль из слота текущей сессии.
func (s *Storage) GetCurrentProfile(ctx context.Context) (*models.Profile, error) {
	const op = "storage.GetCurrentProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var profile models.Profile
	found, err := s.store.Get(keyCurrentProfile, &profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
	}
	return &profile, nil
}

// SaveCurrentProfile записывает профиль в слот текущей сессии.
func (s *Storage) SaveCurrentProfile(ctx context.Context, profile models.Profile) error {
	const op = "storage.SaveCurrentProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.store.Set(keyCurrentProfile, profile); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearCurrentProfile очищает слот текущей сессии.
func (s *Storage) ClearCurrentProfile(ctx context.Context) error {
	const op = "storage.ClearCurrentProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.store.Delete(keyCurrentProfile); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRegistryProfiles возвращает реестр в порядке добавления.
// Пустой или отсутствующий реестр — это пустой список, не ошибка.
func (s *Storage) ListRegistryProfiles(ctx context.Context) ([]models.Profile, error) {
	const op = "storage.ListRegistryProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var profiles []models.Profile
	if _, err := s.store.Get(keyAllProfiles, &profiles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profiles, nil
}

// GetRegistryProfile возвращает запись реестра по имени.
// Имя сравнивается регистронезависимо.
func (s *Storage) GetRegistryProfile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "storage.GetRegistryProfile"

	profiles, err := s.ListRegistryProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range profiles {
		if profiles[i].SameUsername(username) {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
}

// UpsertRegistryProfile добавляет запись в конец реестра либо замещает
// существующую с тем же именем. На одно регистронезависимо различное имя
// в реестре держится ровно одна запись.
func (s *Storage) UpsertRegistryProfile(ctx context.Context, profile models.Profile) error {
	const op = "storage.UpsertRegistryProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var profiles []models.Profile
	if _, err := s.store.Get(keyAllProfiles, &profiles); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	replaced := false
	for i := range profiles {
		if profiles[i].SameUsername(profile.Username) {
			profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, profile)
	}

	if err := s.store.Set(keyAllProfiles, profiles); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementViewCounter увеличивает счётчик просмотров и возвращает
// новое значение.
func (s *Storage) IncrementViewCounter(ctx context.Context) (int64, error) {
	const op = "storage.IncrementViewCounter"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var counter int64
	if _, err := s.store.Get(keyViewCounter, &counter); err != nil {
		// Испорченный счётчик начинается заново, терять тут нечего.
		counter = 0
	}
	counter++
	if err := s.store.Set(keyViewCounter, counter); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return counter, nil
}

// GetViewCounter возвращает текущее значение счётчика просмотров.
func (s *Storage) GetViewCounter(ctx context.Context) (int64, error) {
	const op = "storage.GetViewCounter"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var counter int64
	if _, err := s.store.Get(keyViewCounter, &counter); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return counter, nil
}
