package links

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lpxlsl/plasma-services/internal/http/response"
	downloadservice "github.com/lpxlsl/plasma-services/internal/services/download"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Links() downloadservice.ProductLinks
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.download.links"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	log.Info("served product links")
	render.JSON(w, r, response.StatusOKWithData(h.service.Links()))
}
