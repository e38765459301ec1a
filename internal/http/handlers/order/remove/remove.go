// Package remove реализует HTTP-обработчик удаления заказа.
// Удаление безвозвратно: корзины и мягкого удаления в системе нет.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// Handler управляет HTTP-запросами удаления заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления заказа.
type Service interface {
	Remove(ctx context.Context, id int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить заказ
// @Description Безвозвратно удаляет заказ по его ID.
// @Tags Orders
// @Produce  json
// @Param id path int true "ID заказа"
// @Success 200 {object} map[string]any "Успешное удаление"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.remove"

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

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			log.Info("order not found", slog.Int("order_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
			return
		}
		log.Error("failed to delete order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete order"))
		return
	}

	log.Info("order deleted", slog.Int("order_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_id": id,
	}))
}
