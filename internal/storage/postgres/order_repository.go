package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	opTimeout          = 5 * time.Second
	defaultRecentLimit = 5
)

// orderAggregateColumns перечисляет колонки денормализованной выборки заказа
// в том порядке, в котором их сканирует queryAggregates.
const orderAggregateColumns = `
	orders.id, orders.status, orders.date, orders.user_id,
	users.username, users.firstname, users.lastname, users.password,
	order_line.id, order_line.product_id, order_line.quantity,
	products.name, products.price_minor, products.category`

const orderAggregateJoins = `
	LEFT JOIN users ON users.id = orders.user_id
	LEFT JOIN order_line ON order_line.order_id = orders.id
	LEFT JOIN products ON products.id = order_line.product_id`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// List возвращает страницу заказов по убыванию даты. Limit и offset
// передаются только связанными параметрами, никакой интерполяции чисел
// в текст запроса. Страница применяется к заказам в подзапросе, а не к
// строкам джойна, чтобы агрегаты не обрезались на границе страницы.
func (r *orderRepository) List(page domain.Page) ([]domain.Order, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.queryAggregates(ctx, `
		SELECT `+orderAggregateColumns+`
		FROM (
			SELECT id, status, date, user_id
			FROM orders
			ORDER BY date DESC, id DESC
			LIMIT $1 OFFSET $2
		) AS orders`+orderAggregateJoins+`
		ORDER BY orders.date DESC, orders.id DESC, order_line.id ASC
	`, page.Limit(), page.Offset())
}

// Get возвращает один агрегат или ErrOrderNotFound, если строк нет.
func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	orders, err := r.queryAggregates(ctx, `
		SELECT `+orderAggregateColumns+`
		FROM orders`+orderAggregateJoins+`
		WHERE orders.id = $1
		ORDER BY order_line.id ASC
	`, id)
	if err != nil {
		return domain.Order{}, err
	}
	if len(orders) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return orders[0], nil
}

// CurrentForUser возвращает активный заказ пользователя.
// Уникальность активного заказа схемой не гарантируется: если их несколько,
// возвращается первый по id.
func (r *orderRepository) CurrentForUser(userID int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	orders, err := r.queryAggregates(ctx, `
		SELECT `+orderAggregateColumns+`
		FROM orders`+orderAggregateJoins+`
		WHERE orders.user_id = $1 AND orders.status = $2
		ORDER BY orders.id ASC, order_line.id ASC
	`, userID, string(domain.OrderStatusActive))
	if err != nil {
		return domain.Order{}, err
	}
	if len(orders) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return orders[0], nil
}

// CompletedForUser возвращает оформленные заказы пользователя.
func (r *orderRepository) CompletedForUser(userID int64) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.queryAggregates(ctx, `
		SELECT `+orderAggregateColumns+`
		FROM orders`+orderAggregateJoins+`
		WHERE orders.user_id = $1 AND orders.status = $2
		ORDER BY orders.date DESC, orders.id DESC, order_line.id ASC
	`, userID, string(domain.OrderStatusComplete))
}

// RecentForUser возвращает последние limit заказов пользователя.
func (r *orderRepository) RecentForUser(userID int64, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.queryAggregates(ctx, `
		SELECT `+orderAggregateColumns+`
		FROM (
			SELECT id, status, date, user_id
			FROM orders
			WHERE user_id = $1
			ORDER BY date DESC, id DESC
			LIMIT $2
		) AS orders`+orderAggregateJoins+`
		ORDER BY orders.date DESC, orders.id DESC, order_line.id ASC
	`, userID, limit)
}

// Create атомарно записывает заказ и все его позиции.
// Либо возвращается полный агрегат с присвоенными id, либо не остаётся
// ни одной строки.
func (r *orderRepository) Create(order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	created := domain.Order{
		ID:     domain.PendingOrderID,
		Status: order.Status,
		Date:   order.Date,
		UserID: order.UserID,
		User:   order.User,
		Lines:  make([]domain.OrderLine, len(order.Lines)),
	}
	copy(created.Lines, order.Lines)

	// Ссылки проверяются до открытия транзакции: битая ссылка — это ошибка
	// валидации, она не должна стоить нам BEGIN/ROLLBACK.
	if created.User == nil || created.User.ID != created.UserID {
		user, err := r.fetchUser(ctx, created.UserID)
		if err != nil {
			return domain.Order{}, err
		}
		created.User = &user
	}
	for i := range created.Lines {
		line := &created.Lines[i]
		if line.Product == nil || line.Product.ID != line.ProductID {
			product, err := r.fetchProduct(ctx, line.ProductID)
			if err != nil {
				return domain.Order{}, err
			}
			line.Product = &product
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (status, date, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, string(created.Status), created.Date, created.UserID).Scan(&created.ID)
	if err != nil {
		if ref := referenceViolation(err); ref != nil {
			return domain.Order{}, ref
		}
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	// Позиции вставляются строго последовательно: транзакция сериализует
	// операторы на одном подключении, а id позиций нужны в порядке вставки.
	for i := range created.Lines {
		line := &created.Lines[i]
		line.OrderID = created.ID
		if err = tx.QueryRowContext(ctx, `
			INSERT INTO order_line (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`, created.ID, line.ProductID, line.Quantity).Scan(&line.ID); err != nil {
			if ref := referenceViolation(err); ref != nil {
				return domain.Order{}, ref
			}
			return domain.Order{}, fmt.Errorf("insert order line (product %d): %w", line.ProductID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit create order: %w", err)
	}

	return created, nil
}

// Delete удаляет заказ и возвращает его скалярные поля до удаления.
// Позиции не перечитываются; схема каскадно удаляет их вместе с заказом.
func (r *orderRepository) Delete(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		order  domain.Order
		status string
	)
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM orders
		WHERE id = $1
		RETURNING id, status, date, user_id
	`, id).Scan(&order.ID, &status, &order.Date, &order.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("delete order: %w", err)
	}
	order.Status = domain.OrderStatus(status)
	order.Lines = []domain.OrderLine{}

	return order, nil
}

// AddLine добавляет позицию напрямую, вне транзакции создания заказа.
// Существование родительского заказа приложением не перепроверяется,
// битую ссылку поймает внешний ключ.
func (r *orderRepository) AddLine(orderID, productID int64, quantity int32) (domain.OrderLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var line domain.OrderLine
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO order_line (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, order_id, product_id, quantity
	`, orderID, productID, quantity).Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity)
	if err != nil {
		if ref := referenceViolation(err); ref != nil {
			return domain.OrderLine{}, ref
		}
		return domain.OrderLine{}, fmt.Errorf("insert order line: %w", err)
	}

	return line, nil
}

// RemoveLine удаляет позицию по id.
func (r *orderRepository) RemoveLine(lineID int64) (domain.OrderLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var line domain.OrderLine
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM order_line
		WHERE id = $1
		RETURNING id, order_id, product_id, quantity
	`, lineID).Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderLine{}, domain.ErrOrderLineNotFound
		}
		return domain.OrderLine{}, fmt.Errorf("delete order line: %w", err)
	}

	return line, nil
}

func (r *orderRepository) queryAggregates(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order aggregates: %w", err)
	}
	defer rows.Close()

	flat := make([]orderRow, 0)
	for rows.Next() {
		var row orderRow
		if err := rows.Scan(
			&row.orderID, &row.status, &row.date, &row.userID,
			&row.userName, &row.firstName, &row.lastName, &row.passwordHash,
			&row.lineID, &row.productID, &row.quantity,
			&row.productName, &row.priceMinor, &row.category,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return flattenOrders(flat), nil
}

func (r *orderRepository) fetchUser(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, firstname, lastname, password
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.UserName, &user.FirstName, &user.LastName, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &domain.ReferenceNotFoundError{Entity: "user", ID: id}
		}
		return domain.User{}, fmt.Errorf("check user reference: %w", err)
	}
	return user, nil
}

func (r *orderRepository) fetchProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price_minor, category
		FROM products
		WHERE id = $1
	`, id).Scan(&product.ID, &product.Name, &product.PriceMinor, &product.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, &domain.ReferenceNotFoundError{Entity: "product", ID: id}
		}
		return domain.Product{}, fmt.Errorf("check product reference: %w", err)
	}
	return product, nil
}

// referenceViolation переводит нарушение внешнего ключа в доменную ошибку
// битой ссылки. Это ловит гонку между проверкой ссылки и вставкой.
func referenceViolation(err error) *domain.ReferenceNotFoundError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return nil
	}

	entity := "order"
	switch {
	case strings.Contains(pgErr.ConstraintName, "product"):
		entity = "product"
	case strings.Contains(pgErr.ConstraintName, "user"):
		entity = "user"
	}
	return &domain.ReferenceNotFoundError{Entity: entity}
}

var _ domain.OrderRepository = (*orderRepository)(nil)
