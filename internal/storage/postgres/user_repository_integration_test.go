package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestUserRepository_PostgresCRUD(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)

	created, err := repo.Create(domain.User{
		UserName:     "ivan",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned user id")
	}

	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.UserName != "ivan" {
		t.Fatalf("unexpected user: %+v", got)
	}

	byName, err := repo.GetByUserName("ivan")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("unexpected user by name: %+v", byName)
	}

	users, err := repo.List()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}

	deleted, err := repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("unexpected deleted user: %+v", deleted)
	}
	if _, err := repo.Delete(created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestProductRepository_PostgresCRUDAndViews(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)
	orders := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store, "shopper")

	pens, err := repo.Create(domain.Product{Name: "Pen", PriceMinor: 150, Category: "office"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	lamps, err := repo.Create(domain.Product{Name: "Lamp", PriceMinor: 2500, Category: "home"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	office, err := repo.ListByCategory("office")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(office) != 1 || office[0].ID != pens.ID {
		t.Fatalf("unexpected category result: %+v", office)
	}

	if _, err := repo.Get(999999); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Lamp заказывали больше, чем Pen — Top должен вернуть обе, лампу в том числе.
	_, err = orders.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusComplete,
		Date:   time.Now().UTC(),
		UserID: user.ID,
		Lines: []domain.OrderLine{
			{ProductID: lamps.ID, Quantity: 5},
			{ProductID: pens.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order for top products: %v", err)
	}

	top, err := repo.Top(0)
	if err != nil {
		t.Fatalf("top products: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 top products, got %d", len(top))
	}

	topOne, err := repo.Top(1)
	if err != nil {
		t.Fatalf("top products limit 1: %v", err)
	}
	if len(topOne) != 1 || topOne[0].ID != lamps.ID {
		t.Fatalf("expected lamp as the single top product, got %+v", topOne)
	}
}
