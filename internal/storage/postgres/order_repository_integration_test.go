package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestOrderRepository_PostgresCreateAndGet(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "buyer-1")
	p1 := seedProductForIntegrationTest(t, store, "Keyboard", 4999)
	p2 := seedProductForIntegrationTest(t, store, "Mouse", 1999)

	now := time.Now().UTC().Round(time.Microsecond)
	created, err := repo.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusActive,
		Date:   now,
		UserID: user.ID,
		Lines: []domain.OrderLine{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if created.ID == domain.PendingOrderID {
		t.Fatal("expected assigned order id")
	}
	for i, line := range created.Lines {
		if line.ID == 0 || line.OrderID != created.ID {
			t.Fatalf("line %d missing assigned ids: %+v", i, line)
		}
	}
	if created.User == nil || created.User.ID != user.ID {
		t.Fatalf("expected user snapshot on created order, got %+v", created.User)
	}

	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got.Lines))
	}
	// Порядок вставки сохраняется, снапшоты совпадают с текущими строками товаров.
	if got.Lines[0].Quantity != 2 || got.Lines[1].Quantity != 1 {
		t.Fatalf("unexpected line order: %+v", got.Lines)
	}
	if got.Lines[0].Product == nil || got.Lines[0].Product.Name != "Keyboard" {
		t.Fatalf("unexpected product snapshot: %+v", got.Lines[0].Product)
	}
	if got.User == nil || got.User.UserName != "buyer-1" {
		t.Fatalf("unexpected user snapshot: %+v", got.User)
	}
}

func TestOrderRepository_PostgresCreateAtomicity(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "buyer-atomic")
	p1 := seedProductForIntegrationTest(t, store, "Cable", 499)

	_, err := repo.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusActive,
		Date:   time.Now().UTC(),
		UserID: user.ID,
		Lines: []domain.OrderLine{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: 999999, Quantity: 3},
		},
	})
	if err == nil {
		t.Fatal("expected create to fail on missing product reference")
	}
	var refErr *domain.ReferenceNotFoundError
	if !errors.As(err, &refErr) || refErr.Entity != "product" {
		t.Fatalf("expected product ReferenceNotFoundError, got %v", err)
	}

	// Ни заказа, ни части позиций после отказа остаться не должно.
	if n := countRowsForIntegrationTest(t, store, "orders"); n != 0 {
		t.Fatalf("expected 0 orders after failed create, got %d", n)
	}
	if n := countRowsForIntegrationTest(t, store, "order_line"); n != 0 {
		t.Fatalf("expected 0 order lines after failed create, got %d", n)
	}
}

func TestOrderRepository_PostgresCreateMissingUser(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	_, err := repo.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusActive,
		Date:   time.Now().UTC(),
		UserID: 424242,
	})
	var refErr *domain.ReferenceNotFoundError
	if !errors.As(err, &refErr) || refErr.Entity != "user" || refErr.ID != 424242 {
		t.Fatalf("expected user ReferenceNotFoundError, got %v", err)
	}
	if n := countRowsForIntegrationTest(t, store, "orders"); n != 0 {
		t.Fatalf("expected no order rows, got %d", n)
	}
}

func TestOrderRepository_PostgresListDeduplicates(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "buyer-list")
	p1 := seedProductForIntegrationTest(t, store, "Pen", 199)
	p2 := seedProductForIntegrationTest(t, store, "Pad", 299)
	p3 := seedProductForIntegrationTest(t, store, "Ink", 399)

	_, err := repo.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusActive,
		Date:   time.Now().UTC(),
		UserID: user.ID,
		Lines: []domain.OrderLine{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: p2.ID, Quantity: 2},
			{ProductID: p3.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	orders, err := repo.List(domain.DefaultPage())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	// Три позиции дают три строки джойна, но ровно один агрегат.
	if len(orders) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(orders))
	}
	if len(orders[0].Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(orders[0].Lines))
	}
}

func TestOrderRepository_PostgresListRejectsInvalidPage(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	if _, err := repo.List(domain.Page{Size: 0, Number: 1}); !errors.Is(err, domain.ErrInvalidPagination) {
		t.Fatalf("expected ErrInvalidPagination, got %v", err)
	}
	if _, err := repo.List(domain.Page{Size: 5, Number: 0}); !errors.Is(err, domain.ErrInvalidPagination) {
		t.Fatalf("expected ErrInvalidPagination, got %v", err)
	}
}

func TestOrderRepository_PostgresUserViews(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "buyer-views")
	product := seedProductForIntegrationTest(t, store, "Lamp", 2599)

	now := time.Now().UTC().Round(time.Microsecond)
	for i, status := range []domain.OrderStatus{domain.OrderStatusComplete, domain.OrderStatusComplete, domain.OrderStatusActive} {
		_, err := repo.Create(domain.Order{
			ID:     domain.PendingOrderID,
			Status: status,
			Date:   now.Add(time.Duration(i) * time.Minute),
			UserID: user.ID,
			Lines:  []domain.OrderLine{{ProductID: product.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}

	current, err := repo.CurrentForUser(user.ID)
	if err != nil {
		t.Fatalf("current order: %v", err)
	}
	if current.Status != domain.OrderStatusActive {
		t.Fatalf("expected active order, got %s", current.Status)
	}

	completed, err := repo.CompletedForUser(user.ID)
	if err != nil {
		t.Fatalf("completed orders: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed orders, got %d", len(completed))
	}

	recent, err := repo.RecentForUser(user.ID, 2)
	if err != nil {
		t.Fatalf("recent orders: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent orders, got %d", len(recent))
	}

	// limit <= 0 откатывается к значению по умолчанию, а не к ошибке.
	recentDefault, err := repo.RecentForUser(user.ID, 0)
	if err != nil {
		t.Fatalf("recent orders with default limit: %v", err)
	}
	if len(recentDefault) != 3 {
		t.Fatalf("expected all 3 orders under default limit, got %d", len(recentDefault))
	}
}

func TestOrderRepository_PostgresDeleteIdempotent(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "buyer-delete")
	product := seedProductForIntegrationTest(t, store, "Mug", 899)

	created, err := repo.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusActive,
		Date:   time.Now().UTC(),
		UserID: user.ID,
		Lines:  []domain.OrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	deleted, err := repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if deleted.ID != created.ID || deleted.UserID != user.ID {
		t.Fatalf("unexpected deleted payload: %+v", deleted)
	}
	if deleted.Lines == nil || len(deleted.Lines) != 0 {
		t.Fatalf("delete must not re-fetch lines: %+v", deleted.Lines)
	}

	// Каскад убирает позиции вместе с заказом.
	if n := countRowsForIntegrationTest(t, store, "order_line"); n != 0 {
		t.Fatalf("expected cascade to remove lines, got %d", n)
	}

	// Повторное удаление — "не найдено", не ошибка хранилища.
	if _, err := repo.Delete(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on second delete, got %v", err)
	}
	if _, err := repo.Get(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on get after delete, got %v", err)
	}
}

func TestOrderRepository_PostgresLineOps(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "buyer-lines")
	product := seedProductForIntegrationTest(t, store, "Desk", 19999)

	created, err := repo.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusActive,
		Date:   time.Now().UTC(),
		UserID: user.ID,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	line, err := repo.AddLine(created.ID, product.ID, 4)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	if line.OrderID != created.ID || line.Quantity != 4 {
		t.Fatalf("unexpected line: %+v", line)
	}

	removed, err := repo.RemoveLine(line.ID)
	if err != nil {
		t.Fatalf("remove line: %v", err)
	}
	if removed.ID != line.ID {
		t.Fatalf("unexpected removed line: %+v", removed)
	}

	if _, err := repo.RemoveLine(line.ID); !errors.Is(err, domain.ErrOrderLineNotFound) {
		t.Fatalf("expected ErrOrderLineNotFound on second remove, got %v", err)
	}
}
