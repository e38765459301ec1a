// Package cache инкапсулирует подключение к Redis.
// Единственный потребитель — счётчик неудачных попыток входа:
// сами заказы никогда не кэшируются, каждое чтение идёт в базу.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/repair-orders/internal/config"
)

// Cache обертка над клиентом Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

func attemptsKey(email string) string {
	return "login_attempts:" + email
}

// IncrementLoginAttempts увеличивает счётчик неудачных попыток входа для email
// и возвращает его новое значение. Окно задаётся при первой попытке.
func (c *Cache) IncrementLoginAttempts(ctx context.Context, email string, window time.Duration) (int64, error) {
	const op = "cache.IncrementLoginAttempts"
	key := attemptsKey(email)
	count, err := c.Db.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if count == 1 {
		if err := c.Db.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	return count, nil
}

// LoginAttempts возвращает текущее значение счётчика для email.
func (c *Cache) LoginAttempts(ctx context.Context, email string) (int64, error) {
	const op = "cache.LoginAttempts"
	count, err := c.Db.Get(ctx, attemptsKey(email)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ResetLoginAttempts сбрасывает счётчик после успешного входа.
func (c *Cache) ResetLoginAttempts(ctx context.Context, email string) error {
	return c.Db.Del(ctx, attemptsKey(email)).Err()
}
