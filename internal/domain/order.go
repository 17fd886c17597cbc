package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в витрине.
type OrderStatus string

const (
	// OrderStatusActive — открытая корзина пользователя, в неё ещё можно добавлять позиции.
	OrderStatusActive OrderStatus = "active"
	// OrderStatusComplete — заказ оформлен и закрыт для изменений.
	OrderStatusComplete OrderStatus = "complete"
)

// PendingOrderID — сентинел идентификатора до того, как хранилище присвоит настоящий id.
const PendingOrderID int64 = -1

// OrderLine представляет одну позицию заказа.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	// Quantity — количество единиц товара, всегда > 0.
	Quantity int32
	// Product — денормализованный снапшот товара на момент чтения/записи.
	// Может отсутствовать, тогда позиция ссылается на товар только по ProductID.
	Product *Product
}

// Order агрегирует заказ вместе с позициями и снапшотом владельца.
type Order struct {
	ID     int64
	Status OrderStatus
	Date   time.Time
	UserID int64
	// Lines после чтения из хранилища никогда не nil: заказ без позиций
	// несёт пустой срез.
	Lines []OrderLine
	// User — снапшот владельца по user_id; заполняется джойном при чтении,
	// сам пользователь живёт в своём хранилище.
	User *User
}

// ValidateCandidate проверяет кандидата на создание и возвращает список замечаний.
func (o *Order) ValidateCandidate() []error {
	var errs []error

	if o.Status != OrderStatusActive && o.Status != OrderStatusComplete {
		errs = append(errs, ErrOrderStatusInvalid)
	}
	if o.UserID <= 0 {
		errs = append(errs, ErrUserIDRequired)
	}
	if o.Date.IsZero() {
		errs = append(errs, ErrOrderDateRequired)
	}

	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			errs = append(errs, ErrLineQuantityInvalid)
		}
		if line.ProductID <= 0 {
			errs = append(errs, ErrLineProductRequired)
		}
	}

	return errs
}
