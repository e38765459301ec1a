// Package rabbitmq содержит подключение к брокеру и примитивы
// публикации и потребления сообщений очереди уведомлений о заказах.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Имена обменника, очереди и ключа маршрутизации уведомлений о заказах.
const (
	NotificationsExchange = "notifications"
	OrderQueue            = "notification.order"
	OrderRoutingKey       = "order"
)

// Connect подключается к RabbitMQ с ретраями.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет обменник и очередь уведомлений.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		NotificationsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := ch.QueueDeclare(
		OrderQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, OrderQueue, err)
	}
	if err := ch.QueueBind(OrderQueue, OrderRoutingKey, NotificationsExchange, false, nil); err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, OrderQueue, err)
	}

	return ch, nil
}
