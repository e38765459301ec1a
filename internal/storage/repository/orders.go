package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/repair-orders/internal/models"
)

const orderColumns = `id, customer_name, phone, address, device_type, manufacturer,
			      description, error_description, order_date, purchase_date,
			      order_number, product_id, factory_number, serial_number, note,
			      submitted_at, status, technician, invoice`

// CreateOrder вставляет новую запись заказа и возвращает её ID.
// Все поля записываются одним INSERT: частично сохранённых строк не бывает.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (int, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (customer_name, phone, address, device_type, manufacturer,
			      description, error_description, order_date, purchase_date, order_number,
			      product_id, factory_number, serial_number, note, submitted_at,
			      status, technician, invoice)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		order.CustomerName, order.Phone, order.Address, order.DeviceType, order.Manufacturer,
		order.Description, order.ErrorDescription, order.OrderDate, order.PurchaseDate,
		order.OrderNumber, order.ProductID, order.FactoryNumber, order.SerialNumber,
		order.Note, order.SubmittedAt, order.Status, order.Technician, order.Invoice).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetOrderByID возвращает заказ по его ID.
// Отсутствие строки не является ошибкой: возвращается (nil, nil).
func (s *Storage) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	const op = "storage.GetOrderByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ListOrders возвращает страницу заказов и общее число строк.
// Подсчёт и выборка выполняются в одной read-only транзакции уровня
// REPEATABLE READ: оба запроса читают один снимок, поэтому сводка
// пагинации всегда согласована с возвращённой страницей.
func (s *Storage) ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, int, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := tx.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := rows.Close(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateOrder обновляет поля жизненного цикла заказа и возвращает количество
// изменённых строк. SET-часть собирается только из непустых указателей
// OrderUpdate, так что поля заявки этим путём изменить невозможно.
func (s *Storage) UpdateOrder(ctx context.Context, id int, upd models.OrderUpdate) (int, error) {
	const op = "storage.UpdateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var setClauses []string
	var args []any
	addSet := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addSet("status", upd.Status)
	addSet("technician", upd.Technician)
	addSet("invoice", upd.Invoice)
	if len(setClauses) == 0 {
		return 0, fmt.Errorf("%s: no fields to update", op)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteOrder удаляет заказ по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteOrder(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM orders WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	if err := row.Scan(&o.ID, &o.CustomerName, &o.Phone, &o.Address, &o.DeviceType,
		&o.Manufacturer, &o.Description, &o.ErrorDescription, &o.OrderDate,
		&o.PurchaseDate, &o.OrderNumber, &o.ProductID, &o.FactoryNumber,
		&o.SerialNumber, &o.Note, &o.SubmittedAt, &o.Status, &o.Technician,
		&o.Invoice); err != nil {
		return nil, err
	}
	return &o, nil
}
