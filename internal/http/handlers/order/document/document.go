// Package document реализует HTTP-обработчик выгрузки документов по заказу.
//
// Документ рендерится внешним сервисом; клиенту возвращается PDF как
// вложение. Детали ошибок рендеринга наружу не отдаются.
package document

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	docclient "github.com/magabrotheeeer/repair-orders/internal/document"
	"github.com/magabrotheeeer/repair-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Handler управляет HTTP-запросами выгрузки документов.
type Handler struct {
	log      *slog.Logger
	service  OrderService
	renderer Renderer
}

// OrderService описывает интерфейс чтения заказа.
type OrderService interface {
	GetByID(ctx context.Context, id int) (*models.Order, error)
}

// Renderer описывает интерфейс клиента сервиса генерации документов.
type Renderer interface {
	RenderDocument(ctx context.Context, order models.Order, docType, requestedBy string) ([]byte, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service OrderService, renderer Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить документ по заказу
// @Description Возвращает PDF указанного типа (invoice, offer, kiadni, worksheet) для заказа.
// @Tags Documents
// @Produce  application/pdf
// @Param id path int true "ID заказа"
// @Param type path string true "Тип документа"
// @Success 200 {file} binary "PDF-документ"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или тип документа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка генерации документа"
// @Security BearerAuth
// @Router /orders/{id}/documents/{type} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.document"

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

	docType := chi.URLParam(r, "type")
	if !docclient.IsKnownType(docType) {
		log.Error("unknown document type", slog.String("type", docType))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown document type"))
		return
	}

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
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

	pdf, err := h.renderer.RenderDocument(r.Context(), *order, docType, identity.Name)
	if err != nil {
		log.Error("document rendering failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("rendering failed"))
		return
	}

	filename := docclient.FileName(*order, docType)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+url.PathEscape(filename)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	log.Info("document rendered",
		slog.Int("order_id", id),
		slog.String("type", docType),
		slog.String("requested_by", identity.Email),
	)
	if _, err := w.Write(pdf); err != nil {
		log.Error("failed to write document", sl.Err(err))
	}
}
