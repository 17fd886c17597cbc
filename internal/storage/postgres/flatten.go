package postgres

import (
	"database/sql"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderRow — одна строка денормализованной выборки заказов: по строке на
// позицию, либо единственная строка с NULL-полями позиции, если у заказа
// позиций нет (LEFT JOIN).
type orderRow struct {
	orderID      int64
	status       string
	date         time.Time
	userID       int64
	userName     sql.NullString
	firstName    sql.NullString
	lastName     sql.NullString
	passwordHash sql.NullString
	lineID       sql.NullInt64
	productID    sql.NullInt64
	quantity     sql.NullInt32
	productName  sql.NullString
	priceMinor   sql.NullInt64
	category     sql.NullString
}

// flattenOrders сворачивает плоский результат джойна в уникальные агрегаты.
// Один проход с группировкой по id заказа; порядок первого появления
// сохраняется, позиции добавляются в порядке строк. Заказ без позиций
// получает пустой срез, не nil.
func flattenOrders(rows []orderRow) []domain.Order {
	orders := make([]domain.Order, 0, len(rows))
	index := make(map[int64]int, len(rows))

	for _, row := range rows {
		idx, seen := index[row.orderID]
		if !seen {
			order := domain.Order{
				ID:     row.orderID,
				Status: domain.OrderStatus(row.status),
				Date:   row.date,
				UserID: row.userID,
				Lines:  []domain.OrderLine{},
			}
			if row.userName.Valid {
				order.User = &domain.User{
					ID:           row.userID,
					UserName:     row.userName.String,
					FirstName:    row.firstName.String,
					LastName:     row.lastName.String,
					PasswordHash: row.passwordHash.String,
				}
			}
			orders = append(orders, order)
			idx = len(orders) - 1
			index[row.orderID] = idx
		}

		if !row.lineID.Valid {
			continue
		}
		line := domain.OrderLine{
			ID:        row.lineID.Int64,
			OrderID:   row.orderID,
			ProductID: row.productID.Int64,
			Quantity:  row.quantity.Int32,
		}
		if row.productName.Valid {
			line.Product = &domain.Product{
				ID:         row.productID.Int64,
				Name:       row.productName.String,
				PriceMinor: row.priceMinor.Int64,
				Category:   row.category.String,
			}
		}
		orders[idx].Lines = append(orders[idx].Lines, line)
	}

	return orders
}
