package domain

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// List возвращает страницу заказов по убыванию даты, каждый — полным агрегатом.
	List(page Page) ([]Order, error)
	// Get возвращает агрегат по идентификатору или ErrOrderNotFound, если его нет.
	Get(id int64) (Order, error)
	// Create атомарно сохраняет заказ вместе со всеми позициями.
	// Либо возвращается агрегат с присвоенными id, либо не остаётся ни одной строки.
	Create(order Order) (Order, error)
	// Delete удаляет заказ и возвращает его скалярные поля до удаления
	// (без повторной загрузки позиций) или ErrOrderNotFound.
	Delete(id int64) (Order, error)
	// CurrentForUser возвращает активный заказ пользователя или ErrOrderNotFound.
	CurrentForUser(userID int64) (Order, error)
	// CompletedForUser возвращает оформленные заказы пользователя.
	CompletedForUser(userID int64) ([]Order, error)
	// RecentForUser возвращает последние заказы пользователя;
	// limit <= 0 трактуется как значение по умолчанию.
	RecentForUser(userID int64, limit int) ([]Order, error)
	// AddLine добавляет позицию напрямую, вне транзакции создания заказа.
	// Существование родительского заказа не перепроверяется.
	AddLine(orderID, productID int64, quantity int32) (OrderLine, error)
	// RemoveLine удаляет позицию по id или возвращает ErrOrderLineNotFound.
	RemoveLine(lineID int64) (OrderLine, error)
}

// UserRepository описывает требования к хранилищу пользователей.
type UserRepository interface {
	List() ([]User, error)
	// Get возвращает пользователя или ErrUserNotFound.
	Get(id int64) (User, error)
	// GetByUserName ищет пользователя по логину для аутентификации.
	GetByUserName(userName string) (User, error)
	// Create сохраняет пользователя; PasswordHash уже должен быть захеширован.
	Create(user User) (User, error)
	Delete(id int64) (User, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	List() ([]Product, error)
	// Get возвращает товар или ErrProductNotFound.
	Get(id int64) (Product, error)
	Create(product Product) (Product, error)
	Delete(id int64) (Product, error)
	// ListByCategory возвращает товары категории.
	ListByCategory(category string) ([]Product, error)
	// Top возвращает самые заказываемые товары; limit <= 0 трактуется как значение по умолчанию.
	Top(limit int) ([]Product, error)
}
