package listusers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lpxlsl/plasma-services/internal/http/middlewarectx"
	"github.com/lpxlsl/plasma-services/internal/http/response"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	adminservice "github.com/lpxlsl/plasma-services/internal/services/admin"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListUsers(ctx context.Context, actor string) (*adminservice.Listing, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listusers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || actor == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	listing, err := h.service.ListUsers(r.Context(), actor)
	if err != nil {
		if errors.Is(err, adminservice.ErrForbidden) {
			log.Warn("access denied", slog.String("actor", actor))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
			return
		}
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	log.Info("listed users", slog.Int("count", len(listing.Users)))
	render.JSON(w, r, response.StatusOKWithData(listing))
}
