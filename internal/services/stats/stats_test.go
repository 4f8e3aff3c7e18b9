package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpxlsl/plasma-services/internal/models"
	"github.com/lpxlsl/plasma-services/internal/storage/localstore"
	"github.com/lpxlsl/plasma-services/internal/storage/repository"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*StatsService, *repository.Storage) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	repo := repository.New(store)
	return NewStatsService(repo, prometheus.NewRegistry(), newNoopLogger()), repo
}

func TestStatsService_RecordView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	counter, err := svc.RecordView(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counter)

	counter, err = svc.RecordView(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counter)

	assert.Equal(t, float64(2), testutil.ToFloat64(svc.viewsTotal))
}

func TestStatsService_Views(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	views, err := svc.Views(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), views)

	_, err = svc.RecordView(ctx)
	require.NoError(t, err)

	views, err = svc.Views(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
}

func TestStatsService_Refresh(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	profiles := []models.Profile{
		{UID: "1", Username: "alice", SubscriptionTier: models.TierGold},
		{UID: "2", Username: "bob", SubscriptionTier: models.TierGold},
		{UID: "3", Username: "carol", SubscriptionTier: models.TierNone},
	}
	for _, p := range profiles {
		require.NoError(t, repo.UpsertRegistryProfile(ctx, p))
	}
	_, err := repo.IncrementViewCounter(ctx)
	require.NoError(t, err)

	svc.refresh(ctx)

	assert.Equal(t, float64(1), testutil.ToFloat64(svc.viewsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(svc.usersByTier.WithLabelValues("gold")))
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.usersByTier.WithLabelValues("none")))
	assert.Equal(t, float64(0), testutil.ToFloat64(svc.usersByTier.WithLabelValues("silver")))
}

func TestStatsService_RunStopsOnCancel(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
