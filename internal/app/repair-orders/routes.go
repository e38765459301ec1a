// Package repairorders предоставляет маршруты для основного приложения.
package repairorders

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/repair-orders/internal/cache"
	"github.com/magabrotheeeer/repair-orders/internal/config"
	"github.com/magabrotheeeer/repair-orders/internal/document"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/health"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/create"
	orderdocument "github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/document"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/list"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/notify"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/read"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/remove"
	"github.com/magabrotheeeer/repair-orders/internal/http/handlers/order/update"
	"github.com/magabrotheeeer/repair-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/repair-orders/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/repair-orders/internal/services/auth"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService, orderService *orderservice.OrderService,
	renderer *document.Client, notifier *rabbitmq.Notifier, cacheRedis *cache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, authService, cacheRedis, cfg.LoginLimit).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Создать заказ может любой вошедший пользователь
			r.Post("/orders", create.New(logger, orderService).ServeHTTP)

			r.With(middlewarectx.RequirePermission(authService, logger, middlewarectx.PermViewDatabase)).
				Get("/orders", list.New(logger, orderService).ServeHTTP)
			r.With(middlewarectx.RequirePermission(authService, logger, middlewarectx.PermViewDatabase)).
				Get("/orders/{id}", read.New(logger, orderService).ServeHTTP)
			r.With(middlewarectx.RequirePermission(authService, logger, middlewarectx.PermEditOrders)).
				Put("/orders/{id}", update.New(logger, orderService).ServeHTTP)
			r.With(middlewarectx.RequirePermission(authService, logger, middlewarectx.PermDeleteOrders)).
				Delete("/orders/{id}", remove.New(logger, orderService).ServeHTTP)
			r.With(middlewarectx.RequirePermission(authService, logger, middlewarectx.PermEditOrders)).
				Get("/orders/{id}/documents/{type}", orderdocument.New(logger, orderService, renderer).ServeHTTP)
			r.With(middlewarectx.RequirePermission(authService, logger, middlewarectx.PermEditOrders)).
				Post("/orders/{id}/email", notify.New(logger, orderService, notifier).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
