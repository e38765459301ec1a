// Package repairorders собирает и запускает основной HTTP-сервис учёта заказов.
package repairorders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/repair-orders/internal/cache"
	"github.com/magabrotheeeer/repair-orders/internal/config"
	"github.com/magabrotheeeer/repair-orders/internal/credentials"
	"github.com/magabrotheeeer/repair-orders/internal/document"
	libjwt "github.com/magabrotheeeer/repair-orders/internal/lib/jwt"
	"github.com/magabrotheeeer/repair-orders/internal/migrations"
	"github.com/magabrotheeeer/repair-orders/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/repair-orders/internal/services/auth"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
	"github.com/magabrotheeeer/repair-orders/internal/storage/repository"
)

// App инкапсулирует сервер и внешние соединения основного сервиса.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
}

// New собирает приложение: базу, учётные записи, очередь и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	creds, err := credentials.Load(cfg.UsersFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("credentials loaded", slog.Int("users", creds.Count()))

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	amqpCh, err := rabbitmq.SetupChannel(amqpConn)
	if err != nil {
		return nil, err
	}
	notifier := rabbitmq.NewNotifier(amqpCh)

	jwtMaker := libjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(creds, jwtMaker)
	orderService := orderservice.NewOrderService(db, logger, cfg.StorageTimeout)
	renderer := document.NewClient(cfg.DocumentRenderer)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, orderService, renderer, notifier, cacheRedis)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
		amqpCh:   amqpCh,
	}, nil
}

// Run запускает сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.amqpCh.Close()
		_ = a.amqpConn.Close()
		_ = a.db.DB.Close()
		return err
	}
}
