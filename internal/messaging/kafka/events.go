package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventType определяет тип события заказа.
type EventType string

const (
	EventTypeOrderCreated   EventType = "order.created"
	EventTypeOrderDeleted   EventType = "order.deleted"
	EventTypeOrderLineAdded EventType = "order.line_added"
)

// Topics для Kafka.
const (
	TopicOrderEvents = "storefront.order.events"
)

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent создаёт событие заказа с уникальным идентификатором.
func NewOrderEvent(eventType EventType, orderID, userID int64, status string) *OrderEvent {
	return &OrderEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		OrderID:   orderID,
		UserID:    userID,
		Status:    status,
		Timestamp: time.Now(),
	}
}
