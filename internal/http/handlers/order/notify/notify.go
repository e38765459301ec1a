// Package notify реализует HTTP-обработчик отправки уведомления о заказе.
//
// Обработчик только публикует сообщение в очередь: саму почту отправляет
// отдельный процесс notification-sender. Уведомление выполняется по
// принципу best effort и никак не влияет на уже сохранённый заказ.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Request — структура входных данных уведомления: кому отправить письмо.
type Request struct {
	RecipientName  string `json:"recipient_name" validate:"omitempty,max=200"`
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
}

// OrderService описывает интерфейс чтения заказа.
type OrderService interface {
	GetByID(ctx context.Context, id int) (*models.Order, error)
}

// Publisher описывает интерфейс публикации уведомления в очередь.
type Publisher interface {
	PublishOrderNotification(message models.OrderNotification) error
}

// Handler управляет HTTP-запросами отправки уведомлений.
type Handler struct {
	log       *slog.Logger
	service   OrderService
	publisher Publisher
	validate  *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service OrderService, publisher Publisher) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить уведомление о заказе
// @Description Ставит в очередь письмо с данными заказа для указанного адресата.
// @Tags Notifications
// @Accept  json
// @Produce  json
// @Param id path int true "ID заказа"
// @Param request body Request true "Адресат уведомления"
// @Success 200 {object} map[string]any "Уведомление поставлено в очередь"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка постановки в очередь"
// @Security BearerAuth
// @Router /orders/{id}/email [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.notify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		log.Error("failed to read order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read order"))
		return
	}
	if order == nil {
		log.Info("order not found", slog.Int("order_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("order not found"))
		return
	}

	message := models.OrderNotification{
		Reference:      uuid.New().String(),
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		Order:          *order,
	}
	if err := h.publisher.PublishOrderNotification(message); err != nil {
		log.Error("failed to publish notification", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not queue notification"))
		return
	}

	log.Info("notification queued",
		slog.Int("order_id", id),
		slog.String("reference", message.Reference),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reference": message.Reference,
	}))
}
