// Package services содержит логику счётчика просмотров и фоновый пересчёт
// витринных метрик. Счётчик увеличивается один раз на загрузку страницы,
// фоновый цикл перечитывает хранилище и обновляет gauge-метрики.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	"github.com/lpxlsl/plasma-services/internal/models"
)

// StatsRepository определяет методы хранилища, нужные для метрик.
type StatsRepository interface {
	// IncrementViewCounter увеличивает счётчик просмотров и возвращает новое значение.
	IncrementViewCounter(ctx context.Context) (int64, error)
	// GetViewCounter возвращает текущее значение счётчика просмотров.
	GetViewCounter(ctx context.Context) (int64, error)
	// ListRegistryProfiles возвращает реестр в порядке добавления.
	ListRegistryProfiles(ctx context.Context) ([]models.Profile, error)
}

// StatsService реализует счётчик просмотров и экспорт метрик.
type StatsService struct {
	repo        StatsRepository
	log         *slog.Logger
	viewsTotal  prometheus.Gauge
	usersByTier *prometheus.GaugeVec
}

// NewStatsService создает новый экземпляр StatsService и регистрирует
// его коллекторы в переданном реестре prometheus.
func NewStatsService(repo StatsRepository, reg prometheus.Registerer, log *slog.Logger) *StatsService {
	factory := promauto.With(reg)
	return &StatsService{
		repo: repo,
		log:  log,
		viewsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "plasma_page_views_total",
			Help: "Total page views recorded in the local store.",
		}),
		usersByTier: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "plasma_registered_users",
			Help: "Registered profiles in the registry by subscription tier.",
		}, []string{"tier"}),
	}
}

// RecordView фиксирует одну загрузку страницы и возвращает новое значение счётчика.
func (s *StatsService) RecordView(ctx context.Context) (int64, error) {
	counter, err := s.repo.IncrementViewCounter(ctx)
	if err != nil {
		return 0, err
	}
	s.viewsTotal.Set(float64(counter))
	return counter, nil
}

// Views возвращает текущее значение счётчика просмотров.
func (s *StatsService) Views(ctx context.Context) (int64, error) {
	return s.repo.GetViewCounter(ctx)
}

// Run запускает фоновый пересчёт метрик: один проход сразу и далее по
// тикеру, пока контекст не отменён.
func (s *StatsService) Run(ctx context.Context, interval time.Duration) {
	s.refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *StatsService) refresh(ctx context.Context) {
	counter, err := s.repo.GetViewCounter(ctx)
	if err != nil {
		s.log.Error("failed to read view counter", sl.Err(err))
	} else {
		s.viewsTotal.Set(float64(counter))
	}

	profiles, err := s.repo.ListRegistryProfiles(ctx)
	if err != nil {
		s.log.Error("failed to list profiles for metrics", sl.Err(err))
		return
	}
	totals := map[models.Tier]int{
		models.TierNone:   0,
		models.TierBasic:  0,
		models.TierSilver: 0,
		models.TierGold:   0,
	}
	for _, p := range profiles {
		totals[p.SubscriptionTier]++
	}
	for tier, count := range totals {
		s.usersByTier.WithLabelValues(string(tier)).Set(float64(count))
	}
	s.log.Info("refreshed display metrics", slog.Int64("views", counter), slog.Int("profiles", len(profiles)))
}
