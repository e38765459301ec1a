// Package update реализует HTTP-обработчик частичного обновления заказа.
//
// Из тела запроса принимаются только поля жизненного цикла — status,
// technician и invoice. Неизвестные ключи отклоняются на этапе
// декодирования, так что поля заявки этим маршрутом изменить нельзя.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// Handler управляет HTTP-запросами обновления заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления заказа.
type Service interface {
	Update(ctx context.Context, id int, upd models.OrderUpdate) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить заказ
// @Description Частично обновляет поля жизненного цикла заказа: status, technician, invoice.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param id path int true "ID заказа"
// @Param request body models.OrderUpdate true "Обновляемые поля"
// @Success 200 {object} map[string]any "Успешное обновление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 422 {object} response.ErrorResponse "Недопустимые поля"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.update"

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

	var req models.OrderUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("only status, technician and invoice can be updated"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, orderservice.ErrEmptyUpdate):
			log.Error("empty update request")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("no updatable fields in request"))
		case errors.Is(err, orderservice.ErrOrderNotFound):
			log.Info("order not found", slog.Int("order_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
		default:
			log.Error("failed to update order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update order"))
		}
		return
	}

	log.Info("order updated", slog.Int("order_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order_id": id,
	}))
}
