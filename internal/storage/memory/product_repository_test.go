package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestProductRepository_CRUDAndCategory(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())

	pen, err := repo.Create(domain.Product{Name: "Pen", PriceMinor: 150, Category: "office"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(domain.Product{Name: "Lamp", PriceMinor: 2500, Category: "home"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	office, err := repo.ListByCategory("office")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(office) != 1 || office[0].ID != pen.ID {
		t.Fatalf("unexpected category result: %+v", office)
	}

	if _, err := repo.Get(999); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if _, err := repo.Delete(pen.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Delete(pen.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestProductRepository_TopByOrderedQuantity(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	users := memory.NewUserRepository(store)
	orders := memory.NewOrderRepository(store)

	user, err := users.Create(domain.User{UserName: "buyer"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	pen, _ := products.Create(domain.Product{Name: "Pen", PriceMinor: 150, Category: "office"})
	lamp, _ := products.Create(domain.Product{Name: "Lamp", PriceMinor: 2500, Category: "home"})

	_, err = orders.Create(domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatusComplete,
		Date:   time.Now().UTC(),
		UserID: user.ID,
		Lines: []domain.OrderLine{
			{ProductID: lamp.ID, Quantity: 7},
			{ProductID: pen.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	top, err := products.Top(1)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].ID != lamp.ID {
		t.Fatalf("expected lamp on top, got %+v", top)
	}

	// limit <= 0 — значение по умолчанию, обе позиции проходят.
	topDefault, err := products.Top(0)
	if err != nil {
		t.Fatalf("top default: %v", err)
	}
	if len(topDefault) != 2 {
		t.Fatalf("expected 2 products under default limit, got %d", len(topDefault))
	}
}
