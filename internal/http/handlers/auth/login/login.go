package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/lpxlsl/plasma-services/internal/http/response"
	"github.com/lpxlsl/plasma-services/internal/lib/sl"
	"github.com/lpxlsl/plasma-services/internal/models"
)

// Request — тело запроса входа. Пароль принимается, но ни с чем не
// сверяется: вход у продукта — это ворота интерфейса, а не аутентификация.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Login(ctx context.Context, username string) (*models.Profile, string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	profile, token, err := h.service.Login(r.Context(), req.Username)
	if err != nil {
		log.Error("failed to login", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	log.Info("opened session", slog.String("username", req.Username))
	data := map[string]any{
		"username": req.Username,
		"token":    token,
	}
	if profile != nil {
		data["profile"] = profile
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
