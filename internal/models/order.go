// Package models содержит доменные структуры сервиса учёта ремонтных заказов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Значения по умолчанию для полей жизненного цикла заказа.
const (
	DefaultStatus     = "Beérkezett"
	DefaultTechnician = "Nincs hozzárendelve"
	DefaultInvoice    = "Nincs"
)

// Order представляет собой основную модель ремонтного заказа,
// используемую в бизнес-логике и хранилище.
//
// Поля заявки заполняются один раз при создании и больше не меняются.
// Изменяемыми остаются только Status, Technician и Invoice.
type Order struct {
	ID               int       `json:"id"`
	CustomerName     string    `json:"customer_name"`     // Имя клиента
	Phone            string    `json:"phone"`             // Контактный телефон
	Address          string    `json:"address"`           // Адрес клиента
	DeviceType       string    `json:"device_type"`       // Тип устройства
	Manufacturer     string    `json:"manufacturer"`      // Производитель
	Description      string    `json:"description"`       // Описание устройства
	ErrorDescription string    `json:"error_description"` // Описание неисправности со слов клиента
	OrderDate        string    `json:"order_date"`        // Дата заказа, как её указал клиент
	PurchaseDate     string    `json:"purchase_date"`     // Дата покупки устройства
	OrderNumber      string    `json:"order_number"`      // Внешний номер заказа
	ProductID        string    `json:"product_id"`        // Идентификатор товара
	FactoryNumber    string    `json:"factory_number"`    // Заводской номер
	SerialNumber     string    `json:"serial_number"`     // Серийный номер
	Note             string    `json:"note"`              // Произвольная заметка
	SubmittedAt      time.Time `json:"submitted_at"`      // Дата приёма, выставляется сервером
	Status           string    `json:"status"`            // Статус заказа
	Technician       string    `json:"technician"`        // Назначенный техник
	Invoice          string    `json:"invoice"`           // Номер или сумма счёта
}

// DummyOrder используется для приёма данных нового заказа из JSON-запроса,
// прежде чем конвертировать их в Order. Дата приёма и поля жизненного цикла
// из запроса игнорируются.
type DummyOrder struct {
	CustomerName     string `json:"customer_name" validate:"required,max=200"`
	Phone            string `json:"phone" validate:"required,max=50"`
	Address          string `json:"address" validate:"omitempty,max=300"`
	DeviceType       string `json:"device_type" validate:"required,max=100"`
	Manufacturer     string `json:"manufacturer" validate:"omitempty,max=100"`
	Description      string `json:"description" validate:"omitempty,max=2000"`
	ErrorDescription string `json:"error_description" validate:"required,max=2000"`
	OrderDate        string `json:"order_date" validate:"omitempty,max=30"`
	PurchaseDate     string `json:"purchase_date" validate:"omitempty,max=30"`
	OrderNumber      string `json:"order_number" validate:"omitempty,max=100"`
	ProductID        string `json:"product_id" validate:"omitempty,max=100"`
	FactoryNumber    string `json:"factory_number" validate:"omitempty,max=100"`
	SerialNumber     string `json:"serial_number" validate:"omitempty,max=100"`
	Note             string `json:"note" validate:"omitempty,max=2000"`
}

// OrderUpdate используется для приёма частичного обновления заказа.
// Перечислены только поля жизненного цикла: всё остальное по этому
// пути обновить нельзя.
type OrderUpdate struct {
	Status     *string `json:"status" validate:"omitempty,max=100"`
	Technician *string `json:"technician" validate:"omitempty,max=200"`
	Invoice    *string `json:"invoice" validate:"omitempty,max=100"`
}

// IsEmpty сообщает, что запрос не содержит ни одного поля для обновления.
func (u OrderUpdate) IsEmpty() bool {
	return u.Status == nil && u.Technician == nil && u.Invoice == nil
}

// Pagination описывает сводку постраничного вывода списка заказов.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// OrderNotification сообщение для очереди уведомлений о заказе.
type OrderNotification struct {
	Reference      string `json:"reference"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	Order          Order  `json:"order"`
}
