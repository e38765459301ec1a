// Package read реализует HTTP-обработчик чтения одного заказа по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Handler управляет HTTP-запросами чтения заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения заказа.
type Service interface {
	GetByID(ctx context.Context, id int) (*models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить заказ
// @Description Возвращает заказ по его ID.
// @Tags Orders
// @Produce  json
// @Param id path int true "ID заказа"
// @Success 200 {object} map[string]any "Заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.read"

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

	render.JSON(w, r, response.OKWithData(map[string]any{
		"order": order,
	}))
}
