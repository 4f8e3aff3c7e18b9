// Package services содержит логику шлюза загрузки: внешние ссылки продукта
// и имитацию проверки подписки на канал перед выдачей ссылки на релиз.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lpxlsl/plasma-services/internal/config"
)

// ProductLinks — внешние ссылки, которые открывает клиент.
type ProductLinks struct {
	DiscordInvite string `json:"discordInvite"`
	ChannelURL    string `json:"channelUrl"`
}

// GateResult — результат проверки подписки: ссылка на релиз и задержка
// перед переходом, которую клиент обязан выдержать.
type GateResult struct {
	Subscribed      bool   `json:"subscribed"`
	ReleaseURL      string `json:"releaseUrl"`
	RedirectDelayMs int64  `json:"redirectDelayMs"`
}

// DownloadService реализует шлюз загрузки.
type DownloadService struct {
	links config.Links
	log   *slog.Logger
}

// NewDownloadService создает новый экземпляр DownloadService.
func NewDownloadService(links config.Links, log *slog.Logger) *DownloadService {
	return &DownloadService{
		links: links,
		log:   log,
	}
}

// Links возвращает внешние ссылки продукта.
func (s *DownloadService) Links() ProductLinks {
	return ProductLinks{
		DiscordInvite: s.links.DiscordInvite,
		ChannelURL:    s.links.ChannelURL,
	}
}

// CheckSubscription имитирует проверку подписки на канал: выдерживает
// настроенную паузу и всегда отвечает успехом. Настоящей проверки у
// продукта нет, шлюз существует только как ворота перед ссылкой на релиз.
func (s *DownloadService) CheckSubscription(ctx context.Context) (*GateResult, error) {
	timer := time.NewTimer(s.links.CheckDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	s.log.Info("subscription check passed", slog.String("release_url", s.links.ReleaseURL))
	return &GateResult{
		Subscribed:      true,
		ReleaseURL:      s.links.ReleaseURL,
		RedirectDelayMs: s.links.RedirectDelay.Milliseconds(),
	}, nil
}
