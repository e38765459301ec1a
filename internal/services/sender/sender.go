// Package services содержит отправку почтовых уведомлений о заказах.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/lib/smtp"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// SenderService отправляет письма с данными заказа через SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendOrderNotification разбирает сообщение очереди и отправляет письмо адресату.
func (s *SenderService) SendOrderNotification(body []byte) error {
	var message models.OrderNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.RecipientEmail}
	subject := fmt.Sprintf("Megrendelés értesítő #%d", message.Order.ID)

	greetingName := message.RecipientName
	if greetingName == "" {
		greetingName = message.Order.CustomerName
	}
	bodyText := fmt.Sprintf(`Tisztelt %s!

Megrendelésének adatai:

Megrendelés száma: %d
Ügyfél neve: %s
Készülék: %s %s
Hibaleírás: %s
Státusz: %s
Technikus: %s

Üdvözlettel,
Netget Szerviz`,
		greetingName,
		message.Order.ID,
		message.Order.CustomerName,
		message.Order.Manufacturer,
		message.Order.DeviceType,
		message.Order.ErrorDescription,
		message.Order.Status,
		message.Order.Technician,
	)

	if err := s.sendEmail(to, subject, bodyText); err != nil {
		return err
	}
	s.log.Info("order notification sent",
		slog.String("reference", message.Reference),
		slog.Int("order_id", message.Order.ID),
	)
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("to", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to open data writer", sl.Err(err))
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	return client.Quit()
}
