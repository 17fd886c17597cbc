package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Store держит общее in-memory состояние всех репозиториев: заказы, позиции,
// пользователи и товары живут в одних таблицах, как и в PostgreSQL.
// Используется для локальной разработки и тестов.
type Store struct {
	mu sync.RWMutex

	users    map[int64]domain.User
	products map[int64]domain.Product
	orders   map[int64]domain.Order
	// lineOwner сопоставляет id позиции с id заказа для удаления по line id.
	lineOwner map[int64]int64

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64
	nextLineID    int64
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]domain.User),
		products:  make(map[int64]domain.Product),
		orders:    make(map[int64]domain.Order),
		lineOwner: make(map[int64]int64),
	}
}
