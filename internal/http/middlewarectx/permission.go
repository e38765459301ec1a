package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
)

// Теги разрешений, используемые маршрутами.
const (
	PermViewDatabase = "view_database"
	PermEditOrders   = "edit_orders"
	PermDeleteOrders = "delete_orders"
	PermAdmin        = "admin"
)

// PermissionChecker описывает предикат проверки разрешения роли.
type PermissionChecker interface {
	HasPermission(role, tag string) bool
}

// RequirePermission возвращает middleware, которое пропускает запрос дальше,
// только если роль аутентифицированного пользователя содержит указанный тег.
//
// Каждый отказ фиксируется в журнале с личностью вызывающего.
// Сравнение ролей не размазано по обработчикам: это единственное место,
// где принимается решение о 403.
func RequirePermission(checker PermissionChecker, log *slog.Logger, tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequirePermission"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				log.Error("identity not found in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if !checker.HasPermission(identity.Role, tag) {
				log.Warn("permission denied",
					slog.String("email", identity.Email),
					slog.String("role", identity.Role),
					slog.String("permission", tag),
				)
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("permission denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
