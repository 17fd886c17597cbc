package domain

// Product — товар каталога.
type Product struct {
	ID   int64
	Name string
	// PriceMinor — цена в минимальных денежных единицах (например, центы).
	PriceMinor int64
	Category   string
}
