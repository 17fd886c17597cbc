package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultTopProductsLimit = 5

type productRepositoryInMemory struct {
	store *Store
}

// NewProductRepository возвращает in-memory реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepositoryInMemory{store: store}
}

func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collect(func(domain.Product) bool { return true }), nil
}

func (r *productRepositoryInMemory) Get(id int64) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepositoryInMemory) Create(product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextProductID++
	product.ID = r.store.nextProductID
	r.store.products[product.ID] = product

	return product, nil
}

func (r *productRepositoryInMemory) Delete(id int64) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	delete(r.store.products, id)

	return product, nil
}

func (r *productRepositoryInMemory) ListByCategory(category string) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collect(func(p domain.Product) bool { return p.Category == category }), nil
}

// Top суммирует заказанное количество по позициям всех заказов.
func (r *productRepositoryInMemory) Top(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultTopProductsLimit
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	totals := make(map[int64]int64)
	for _, order := range r.store.orders {
		for _, line := range order.Lines {
			totals[line.ProductID] += int64(line.Quantity)
		}
	}

	type ranked struct {
		productID int64
		total     int64
	}
	ranking := make([]ranked, 0, len(totals))
	for productID, total := range totals {
		if _, ok := r.store.products[productID]; !ok {
			continue
		}
		ranking = append(ranking, ranked{productID: productID, total: total})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].total != ranking[j].total {
			return ranking[i].total > ranking[j].total
		}
		return ranking[i].productID < ranking[j].productID
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	top := make([]domain.Product, 0, len(ranking))
	for _, entry := range ranking {
		top = append(top, r.store.products[entry.productID])
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Name < top[j].Name })

	return top, nil
}

func (r *productRepositoryInMemory) collect(keep func(domain.Product) bool) []domain.Product {
	products := make([]domain.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		if keep(product) {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
