package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/lpxlsl/plasma-services/internal/http/response"
)

// AdminOnlyMiddleware пропускает дальше только запросы с ролью admin.
// Остальным возвращается экран "доступ запрещён" в виде 403 с текстом
// ошибки в стандартном конверте.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("role missing in request context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if role != "admin" {
				username, _ := r.Context().Value(User).(string)
				log.Warn("admin area access denied", slog.String("username", username))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
