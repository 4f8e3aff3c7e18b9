package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpxlsl/plasma-services/internal/entitlement"
	"github.com/lpxlsl/plasma-services/internal/lib/jwt"
	"github.com/lpxlsl/plasma-services/internal/models"
	"github.com/lpxlsl/plasma-services/internal/storage/localstore"
	"github.com/lpxlsl/plasma-services/internal/storage/repository"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*SessionService, *repository.Storage, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	repo := repository.New(store)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	resolver := entitlement.NewResolver([]string{"yon"})
	return NewSessionService(repo, maker, resolver, newNoopLogger()), repo, store
}

func TestSessionService_RestoreEmptySlot(t *testing.T) {
	svc, _, _ := newTestService(t)

	profile, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSessionService_RegisterThenRestore(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	profile, token, err := svc.Register(ctx, "alice", "alice@example.com", "secret", "secret")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, profile.UID)
	assert.Equal(t, models.TierNone, profile.SubscriptionTier)
	assert.False(t, profile.RegisteredAt.IsZero())

	restored, err := svc.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, profile.UID, restored.UID)
	assert.Equal(t, "alice", restored.Username)
}

func TestSessionService_RegisterPrivilegedGetsGold(t *testing.T) {
	svc, _, _ := newTestService(t)

	profile, _, err := svc.Register(context.Background(), "Yon", "yon@example.com", "secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.TierGold, profile.SubscriptionTier)
}

func TestSessionService_RegisterPasswordMismatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// Ничего не должно записаться при отказе.
	profile, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSessionService_RegisterEmptyUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Register(context.Background(), "   ", "a@example.com", "secret", "secret")
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestSessionService_LogoutClearsSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	profile, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSessionService_LoginWithRegistryRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	existing := models.Profile{
		UID:              "uid-1",
		Username:         "Alice",
		SubscriptionTier: models.TierSilver,
		RegisteredAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.UpsertRegistryProfile(ctx, existing))

	profile, token, err := svc.Login(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, profile)
	assert.Equal(t, "uid-1", profile.UID)
	assert.Equal(t, models.TierSilver, profile.SubscriptionTier)

	restored, err := svc.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "uid-1", restored.UID)
}

func TestSessionService_LoginWithoutRegistryRecord(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	profile, token, err := svc.Login(ctx, "stranger")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Nil(t, profile)

	// Вход без записи реестра не открывает сессию.
	restored, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestSessionService_RestoreDropsCorruptSlot(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Set("currentProfile", "garbage"))

	profile, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	// Повторное восстановление уже не встречает мусор.
	var raw any
	found, err := store.Get("currentProfile", &raw)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionService_Role(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Equal(t, RoleAdmin, svc.Role("YON"))
	assert.Equal(t, RoleUser, svc.Role("alice"))
}

func TestSessionService_Badge(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Nil(t, svc.Badge(nil))
	assert.Nil(t, svc.Badge(&models.Profile{Username: "alice", SubscriptionTier: models.TierNone}))

	badge := svc.Badge(&models.Profile{Username: "alice", SubscriptionTier: models.TierGold})
	require.NotNil(t, badge)
	assert.Equal(t, "GOLD", badge.Text)
}
