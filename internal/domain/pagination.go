package domain

const (
	// DefaultPageSize — размер страницы, когда вызывающий его не задал.
	DefaultPageSize = 10
	// DefaultPageNumber — первая страница.
	DefaultPageNumber = 1
)

// Page нормализует параметры постраничной выборки в безопасные limit/offset.
type Page struct {
	Size   int
	Number int
}

// DefaultPage возвращает страницу с параметрами по умолчанию.
func DefaultPage() Page {
	return Page{Size: DefaultPageSize, Number: DefaultPageNumber}
}

// Validate отклоняет параметры до того, как будет выполнен хоть один запрос.
func (p Page) Validate() error {
	if p.Size <= 0 || p.Number < 1 {
		return &InvalidPaginationError{PageSize: p.Size, PageNumber: p.Number}
	}
	return nil
}

// Limit возвращает размер выборки.
func (p Page) Limit() int {
	return p.Size
}

// Offset переводит номер страницы в смещение.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
