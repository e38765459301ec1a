// Package services содержит бизнес-логику для управления ремонтными заказами.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Ошибки уровня бизнес-логики. Обработчики превращают их в HTTP-статусы.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrEmptyUpdate     = errors.New("no updatable fields in request")
)

// allowedPageSizes фиксированный набор допустимых размеров страницы.
// Любое другое значение — ошибка вызывающего, а не повод молча поправить.
var allowedPageSizes = map[int]struct{}{20: {}, 50: {}, 100: {}}

// DefaultPageSize размер страницы, если параметр limit не передан.
const DefaultPageSize = 20

// OrderRepository описывает контракт для работы с заказами в базе данных.
type OrderRepository interface {
	// CreateOrder добавляет новый заказ и возвращает его ID.
	CreateOrder(ctx context.Context, order models.Order) (int, error)
	// GetOrderByID возвращает заказ по ID или (nil, nil), если его нет.
	GetOrderByID(ctx context.Context, id int) (*models.Order, error)
	// ListOrders возвращает страницу заказов и общее число строк.
	ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, int, error)
	// UpdateOrder обновляет поля жизненного цикла, возвращает число изменённых строк.
	UpdateOrder(ctx context.Context, id int, upd models.OrderUpdate) (int, error)
	// DeleteOrder удаляет заказ, возвращает число удалённых строк.
	DeleteOrder(ctx context.Context, id int) (int, error)
}

// OrderService реализует операции над заказами поверх хранилища.
// Каждый вызов хранилища ограничен по времени queryTimeout, чтобы
// отказ базы не подвешивал обработчик запроса.
type OrderService struct {
	repo         OrderRepository
	log          *slog.Logger
	queryTimeout time.Duration
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, log *slog.Logger, queryTimeout time.Duration) *OrderService {
	return &OrderService{
		repo:         repo,
		log:          log,
		queryTimeout: queryTimeout,
	}
}

// Create сохраняет новый заказ. Дата приёма выставляется сервером,
// поля жизненного цикла получают значения по умолчанию — что бы ни
// пришло в запросе, повлиять на них при создании нельзя.
func (s *OrderService) Create(ctx context.Context, req models.DummyOrder) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	order := models.Order{
		CustomerName:     req.CustomerName,
		Phone:            req.Phone,
		Address:          req.Address,
		DeviceType:       req.DeviceType,
		Manufacturer:     req.Manufacturer,
		Description:      req.Description,
		ErrorDescription: req.ErrorDescription,
		OrderDate:        req.OrderDate,
		PurchaseDate:     req.PurchaseDate,
		OrderNumber:      req.OrderNumber,
		ProductID:        req.ProductID,
		FactoryNumber:    req.FactoryNumber,
		SerialNumber:     req.SerialNumber,
		Note:             req.Note,
		SubmittedAt:      time.Now().UTC(),
		Status:           models.DefaultStatus,
		Technician:       models.DefaultTechnician,
		Invoice:          models.DefaultInvoice,
	}
	return s.repo.CreateOrder(ctx, order)
}

// List возвращает страницу заказов по возрастанию ID и сводку пагинации.
// page считается с единицы; limit должен входить в фиксированный набор.
func (s *OrderService) List(ctx context.Context, page, limit int) ([]*models.Order, models.Pagination, error) {
	if _, ok := allowedPageSizes[limit]; !ok {
		return nil, models.Pagination{}, ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	offset := (page - 1) * limit
	orders, total, err := s.repo.ListOrders(ctx, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := (total + limit - 1) / limit
	pagination := models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, pagination, nil
}

// GetByID возвращает заказ или (nil, nil), если такого ID нет.
func (s *OrderService) GetByID(ctx context.Context, id int) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	return s.repo.GetOrderByID(ctx, id)
}

// Update применяет частичное обновление полей жизненного цикла.
// Либо применяются все переданные поля, либо ни одно.
func (s *OrderService) Update(ctx context.Context, id int, upd models.OrderUpdate) error {
	if upd.IsEmpty() {
		return ErrEmptyUpdate
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	affected, err := s.repo.UpdateOrder(ctx, id, upd)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Remove безвозвратно удаляет заказ.
func (s *OrderService) Remove(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	affected, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
