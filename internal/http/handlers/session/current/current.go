package current

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lpxlsl/plasma-services/internal/entitlement"
	"github.com/lpxlsl/plasma-services/internal/http/response"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	"github.com/lpxlsl/plasma-services/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Restore(ctx context.Context) (*models.Profile, error)
	Badge(profile *models.Profile) *entitlement.Badge
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP восстанавливает сессию при загрузке клиента. Отсутствие
// сессии — штатный ответ с signedIn=false, по нему клиент показывает
// окно входа без возможности его закрыть.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.current"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profile, err := h.service.Restore(r.Context())
	if err != nil {
		log.Error("failed to restore session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to restore session"))
		return
	}

	if profile == nil {
		log.Info("no active session")
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"signedIn": false,
		}))
		return
	}

	log.Info("session restored", slog.String("username", profile.Username))
	data := map[string]any{
		"signedIn": true,
		"profile":  profile,
	}
	if badge := h.service.Badge(profile); badge != nil {
		data["badge"] = badge
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
