// Package create реализует HTTP-обработчик для приёма новых ремонтных заказов.
//
// Handler принимает JSON-запрос с данными заявки, валидирует их,
// вызывает бизнес-логику создания заказа через сервис и возвращает
// ID созданной записи в JSON-формате.
//
// Создание доступно любому аутентифицированному пользователю; отдельного
// разрешения не требуется. Поля жизненного цикла и дата приёма из тела
// запроса не читаются.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/repair-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Handler управляет HTTP-запросами на создание новых заказов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания заказов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заказа.
type Service interface {
	Create(ctx context.Context, req models.DummyOrder) (int, error)
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
// @Summary Создать новый заказ
// @Description Создает новый ремонтный заказ. Возвращает ID созданной записи.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param request body models.DummyOrder true "Данные нового заказа"
// @Success 200 {object} map[string]any "Успешное создание заказа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании заказа"
// @Security BearerAuth
// @Router /orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create order"))
		return
	}

	log.Info("order created",
		slog.Int("order_id", id),
		slog.String("submitted_by", identity.Email),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order_id": id,
	}))
}
