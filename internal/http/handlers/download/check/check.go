package check

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lpxlsl/plasma-services/internal/http/response"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	downloadservice "github.com/lpxlsl/plasma-services/internal/services/download"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	CheckSubscription(ctx context.Context) (*downloadservice.GateResult, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP проводит клиента через шлюз загрузки: выдерживает паузу
// имитации проверки и возвращает ссылку на релиз с задержкой перехода.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.download.check"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.CheckSubscription(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("subscription check aborted", sl.Err(err))
			return
		}
		log.Error("subscription check failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("subscription check failed"))
		return
	}

	log.Info("subscription check passed")
	render.JSON(w, r, response.StatusOKWithData(result))
}
