package app

import "github.com/vladislavdragonenkov/storefront/internal/domain"

// newTestUser возвращает валидного кандидата для тестов пакета.
func newTestUser() domain.User {
	return domain.User{
		UserName:  "jdoe",
		FirstName: "John",
		LastName:  "Doe",
	}
}
