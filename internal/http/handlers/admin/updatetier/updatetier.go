package updatetier

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/lpxlsl/plasma-services/internal/http/middlewarectx"
	"github.com/lpxlsl/plasma-services/internal/http/response"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	"github.com/lpxlsl/plasma-services/internal/models"
	adminservice "github.com/lpxlsl/plasma-services/internal/services/admin"
	"github.com/lpxlsl/plasma-services/internal/storage/repository"
)

// Request — тело запроса смены уровня подписки.
type Request struct {
	Subscription string `json:"subscription" validate:"required,oneof=none basic silver gold"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	UpdateTier(ctx context.Context, actor, target string, tier models.Tier) (*models.Profile, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.updatetier"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actor, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || actor == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	target := chi.URLParam(r, "username")
	tier, err := models.ParseTier(req.Subscription)
	if err != nil {
		log.Error("failed to parse tier", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown subscription tier"))
		return
	}

	profile, err := h.service.UpdateTier(r.Context(), actor, target, tier)
	if err != nil {
		switch {
		case errors.Is(err, adminservice.ErrForbidden):
			log.Warn("access denied", slog.String("actor", actor))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		case errors.Is(err, adminservice.ErrTargetProtected):
			log.Warn("attempt to edit protected profile", slog.String("target", target))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("profile is protected"))
		case errors.Is(err, repository.ErrProfileNotFound):
			log.Error("target profile not found", slog.String("target", target))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("profile not found"))
		default:
			log.Error("failed to update subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update subscription"))
		}
		return
	}

	log.Info("updated subscription",
		slog.String("target", profile.Username),
		slog.String("tier", string(profile.SubscriptionTier)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile": profile,
	}))
}
