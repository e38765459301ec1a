// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов
// и для проверки разрешений ролей.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization
// и в случае успеха добавляет в контекст личность пользователя для дальнейшего
// использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ для личности аутентифицированного пользователя в контексте.
const IdentityKey Key = "identity"

// AuthService описывает интерфейс сервиса для валидации JWT токена.
type AuthService interface {
	ValidateToken(token string) (*models.Identity, error)
}

// IdentityFromContext извлекает личность пользователя из контекста запроса.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*models.Identity)
	return identity, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет личность пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized. Отсутствующий,
// повреждённый и просроченный токен дают одинаковый ответ.
func JWTMiddleware(authService AuthService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			identity, err := authService.ValidateToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
