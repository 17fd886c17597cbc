package api

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Ответные DTO: доменные типы не несут json-тегов, а наружу
// нельзя отдавать хэш пароля, поэтому форма ответа описана здесь.

type userResponse struct {
	ID        int64  `json:"id"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type productResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Category   string `json:"category,omitempty"`
}

type orderLineResponse struct {
	ID        int64            `json:"id"`
	OrderID   int64            `json:"order_id"`
	ProductID int64            `json:"product_id"`
	Quantity  int32            `json:"quantity"`
	Product   *productResponse `json:"product,omitempty"`
}

type orderResponse struct {
	ID     int64               `json:"id"`
	Status string              `json:"status"`
	Date   time.Time           `json:"date"`
	UserID int64               `json:"user_id"`
	Lines  []orderLineResponse `json:"lines"`
	User   *userResponse       `json:"user,omitempty"`
}

type userWithRecentOrdersResponse struct {
	User         userResponse    `json:"user"`
	RecentOrders []orderResponse `json:"recent_orders"`
}

type tokenResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user,omitempty"`
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		UserName:  user.UserName,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	return out
}

func toProductResponse(product domain.Product) productResponse {
	return productResponse{
		ID:         product.ID,
		Name:       product.Name,
		PriceMinor: product.PriceMinor,
		Category:   product.Category,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}
	return out
}

func toOrderLineResponse(line domain.OrderLine) orderLineResponse {
	out := orderLineResponse{
		ID:        line.ID,
		OrderID:   line.OrderID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	}
	if line.Product != nil {
		product := toProductResponse(*line.Product)
		out.Product = &product
	}
	return out
}

func toOrderResponse(order domain.Order) orderResponse {
	out := orderResponse{
		ID:     order.ID,
		Status: string(order.Status),
		Date:   order.Date,
		UserID: order.UserID,
		Lines:  make([]orderLineResponse, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		out.Lines = append(out.Lines, toOrderLineResponse(line))
	}
	if order.User != nil {
		user := toUserResponse(*order.User)
		out.User = &user
	}
	return out
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}

// Запросы.

type createOrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type createOrderRequest struct {
	Status string                   `json:"status"`
	Date   time.Time                `json:"date"`
	UserID int64                    `json:"user_id"`
	Lines  []createOrderLineRequest `json:"lines"`
}

type addProductRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type createUserRequest struct {
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type signInRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Category   string `json:"category"`
}
