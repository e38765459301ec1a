package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Notifier публикует уведомления о заказах в очередь.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает новый Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishOrderNotification отправляет сообщение в обменник уведомлений.
func (n *Notifier) PublishOrderNotification(message models.OrderNotification) error {
	return PublishMessage(n.ch, NotificationsExchange, OrderRoutingKey, message)
}
