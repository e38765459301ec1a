// Package list реализует HTTP-обработчик постраничного списка заказов.
//
// Размер страницы принимает только значения из фиксированного набора,
// любое другое значение — ошибка запроса, а не повод молча подменить его.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// Handler управляет HTTP-запросами списка заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заказов.
type Service interface {
	List(ctx context.Context, page, limit int) ([]*models.Order, models.Pagination, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заказов
// @Description Возвращает страницу заказов по возрастанию ID со сводкой пагинации.
// @Tags Orders
// @Produce  json
// @Param page query int false "Номер страницы, с 1"
// @Param limit query int false "Размер страницы: 20, 50 или 100"
// @Success 200 {object} map[string]any "Страница заказов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Недопустимый размер страницы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit := orderservice.DefaultPageSize
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			log.Error("invalid limit parameter", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid page size"))
			return
		}
	}

	orders, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		if errors.Is(err, orderservice.ErrInvalidPageSize) {
			log.Error("invalid page size", slog.Int("limit", limit))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid page size"))
			return
		}
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list orders"))
		return
	}

	log.Info("orders listed", slog.Int("count", len(orders)), slog.Int("total", pagination.Total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"orders":     orders,
		"pagination": pagination,
	}))
}
