package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultRecentLimit = 5

type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory реализацию OrderRepository
// с той же семантикой, что и у PostgreSQL-варианта: проверка ссылок,
// атомарность записи и снапшоты пользователя/товаров при чтении.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

func (r *orderRepositoryInMemory) List(page domain.Page) ([]domain.Order, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := r.collect(func(domain.Order) bool { return true })
	offset := page.Offset()
	if offset >= len(orders) {
		return []domain.Order{}, nil
	}
	end := offset + page.Limit()
	if end > len(orders) {
		end = len(orders)
	}

	return orders[offset:end], nil
}

func (r *orderRepositoryInMemory) Get(id int64) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return r.materialize(order), nil
}

// Create проверяет ссылки и записывает заказ с позициями как одно целое.
// Вся запись происходит под одной блокировкой, частичных состояний не бывает.
func (r *orderRepositoryInMemory) Create(order domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[order.UserID]
	if !ok {
		return domain.Order{}, &domain.ReferenceNotFoundError{Entity: "user", ID: order.UserID}
	}
	for _, line := range order.Lines {
		if _, ok := r.store.products[line.ProductID]; !ok {
			return domain.Order{}, &domain.ReferenceNotFoundError{Entity: "product", ID: line.ProductID}
		}
	}

	r.store.nextOrderID++
	created := domain.Order{
		ID:     r.store.nextOrderID,
		Status: order.Status,
		Date:   order.Date,
		UserID: order.UserID,
		User:   &user,
		Lines:  make([]domain.OrderLine, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		r.store.nextLineID++
		product := r.store.products[line.ProductID]
		created.Lines = append(created.Lines, domain.OrderLine{
			ID:        r.store.nextLineID,
			OrderID:   created.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Product:   &product,
		})
		r.store.lineOwner[r.store.nextLineID] = created.ID
	}

	r.store.orders[created.ID] = created

	return r.materialize(created), nil
}

func (r *orderRepositoryInMemory) Delete(id int64) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	for _, line := range order.Lines {
		delete(r.store.lineOwner, line.ID)
	}
	delete(r.store.orders, id)

	// Возвращаются только скалярные поля, позиции не перечитываются.
	return domain.Order{
		ID:     order.ID,
		Status: order.Status,
		Date:   order.Date,
		UserID: order.UserID,
		Lines:  []domain.OrderLine{},
	}, nil
}

func (r *orderRepositoryInMemory) CurrentForUser(userID int64) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	active := r.collect(func(o domain.Order) bool {
		return o.UserID == userID && o.Status == domain.OrderStatusActive
	})
	if len(active) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	// Активный заказ может оказаться не единственным; берём первый по id.
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	return active[0], nil
}

func (r *orderRepositoryInMemory) CompletedForUser(userID int64) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collect(func(o domain.Order) bool {
		return o.UserID == userID && o.Status == domain.OrderStatusComplete
	}), nil
}

func (r *orderRepositoryInMemory) RecentForUser(userID int64, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := r.collect(func(o domain.Order) bool { return o.UserID == userID })
	if len(orders) > limit {
		orders = orders[:limit]
	}

	return orders, nil
}

func (r *orderRepositoryInMemory) AddLine(orderID, productID int64, quantity int32) (domain.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Родительский заказ приложением не перепроверяется; здесь отсутствие
	// заказа ловится так же, как внешним ключом в PostgreSQL.
	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.OrderLine{}, &domain.ReferenceNotFoundError{Entity: "order", ID: orderID}
	}
	if _, ok := r.store.products[productID]; !ok {
		return domain.OrderLine{}, &domain.ReferenceNotFoundError{Entity: "product", ID: productID}
	}

	r.store.nextLineID++
	line := domain.OrderLine{
		ID:        r.store.nextLineID,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
	}
	order.Lines = append(order.Lines, line)
	r.store.orders[orderID] = order
	r.store.lineOwner[line.ID] = orderID

	return line, nil
}

func (r *orderRepositoryInMemory) RemoveLine(lineID int64) (domain.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orderID, ok := r.store.lineOwner[lineID]
	if !ok {
		return domain.OrderLine{}, domain.ErrOrderLineNotFound
	}

	order := r.store.orders[orderID]
	var removed domain.OrderLine
	lines := make([]domain.OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		if line.ID == lineID {
			removed = line
			continue
		}
		lines = append(lines, line)
	}
	order.Lines = lines
	r.store.orders[orderID] = order
	delete(r.store.lineOwner, lineID)

	removed.Product = nil

	return removed, nil
}

// collect возвращает материализованные агрегаты по убыванию даты.
// Вызывается под RLock.
func (r *orderRepositoryInMemory) collect(keep func(domain.Order) bool) []domain.Order {
	orders := make([]domain.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		if keep(order) {
			orders = append(orders, r.materialize(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].Date.Equal(orders[j].Date) {
			return orders[i].Date.After(orders[j].Date)
		}
		return orders[i].ID > orders[j].ID
	})

	return orders
}

// materialize копирует агрегат и обновляет снапшоты из текущего состояния
// хранилища, как это делает джойн при чтении из PostgreSQL. Удалённый
// товар или пользователь даёт nil-снапшот, позиция при этом сохраняется.
// Вызывается под блокировкой store.
func (r *orderRepositoryInMemory) materialize(order domain.Order) domain.Order {
	out := order
	out.Lines = make([]domain.OrderLine, len(order.Lines))
	copy(out.Lines, order.Lines)

	if user, ok := r.store.users[order.UserID]; ok {
		out.User = &user
	} else {
		out.User = nil
	}
	for i := range out.Lines {
		if product, ok := r.store.products[out.Lines[i].ProductID]; ok {
			out.Lines[i].Product = &product
		} else {
			out.Lines[i].Product = nil
		}
	}

	return out
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
