package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка недопустимого статуса заказа.
	ErrOrderStatusInvalid = errors.New("order status must be active or complete")
	// Ошибка отсутствующего идентификатора пользователя у кандидата.
	ErrUserIDRequired = errors.New("user_id is required")
	// Ошибка отсутствующей даты заказа.
	ErrOrderDateRequired = errors.New("order date is required")
	// Ошибка при некорректном количестве в позиции (<= 0).
	ErrLineQuantityInvalid = errors.New("line quantity must be greater than zero")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrLineProductRequired = errors.New("line product_id is required")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderLineNotFound возвращается, если позиция заказа не найдена.
	ErrOrderLineNotFound = errors.New("order line not found")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserNameTaken возвращается при попытке создать пользователя с занятым логином.
	ErrUserNameTaken = errors.New("user name already taken")
	// ErrProductNotFound возвращается, если товар не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrReferenceNotFound — базовый признак битой ссылки на пользователя/товар.
	ErrReferenceNotFound = errors.New("referenced entity not found")
	// ErrInvalidPagination — базовый признак некорректных параметров страницы.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// ReferenceNotFoundError уточняет, какая именно ссылка кандидата не нашлась.
// Разворачивается в ErrReferenceNotFound для проверок через errors.Is.
type ReferenceNotFoundError struct {
	// Entity — "user" или "product".
	Entity string
	ID     int64
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("no such %s: %d", e.Entity, e.ID)
}

func (e *ReferenceNotFoundError) Unwrap() error {
	return ErrReferenceNotFound
}

// InvalidPaginationError несёт отвергнутые параметры страницы.
// Разворачивается в ErrInvalidPagination.
type InvalidPaginationError struct {
	PageSize   int
	PageNumber int
}

func (e *InvalidPaginationError) Error() string {
	return fmt.Sprintf("invalid page number and(or) page size: page_number=%d page_size=%d", e.PageNumber, e.PageSize)
}

func (e *InvalidPaginationError) Unwrap() error {
	return ErrInvalidPagination
}

// IsNotFound проверяет, является ли ошибка любым из "не найдено" по прямому запросу.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderLineNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound)
}
