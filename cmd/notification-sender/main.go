package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/repair-orders/internal/config"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/lib/smtp"
	"github.com/magabrotheeeer/repair-orders/internal/rabbitmq"
	services "github.com/magabrotheeeer/repair-orders/internal/services/sender"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("connected to RabbitMQ", slog.String("URL", cfg.RabbitMQURL))
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = ch.Close()
	}()

	transport := smtp.NewTransport(cfg, logger)
	senderService := services.NewSenderService(logger, transport)

	if err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.OrderQueue, senderService.SendOrderNotification); err != nil {
		logger.Error("failed to start consumer", sl.Err(err))
		os.Exit(1)
	}

	<-ctx.Done()

	logger.Info("notification-sender shutting down gracefully")
}
