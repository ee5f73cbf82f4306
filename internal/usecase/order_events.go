package usecase

import (
	"encoding/json"
	"strconv"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// outboxのトピック（Kafkaのトピック名と同じ）
const (
	TopicOrdersPlaced    = "orders.placed"
	TopicOrdersCancelled = "orders.cancelled"
)

type orderEventItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderEventPayload struct {
	EventID    string           `json:"event_id"`
	OrderID    int64            `json:"order_id"`
	UserID     int64            `json:"user_id"`
	Status     string           `json:"status"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Items      []orderEventItem `json:"items"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// keyは注文ID。同じ注文のイベントは同じパーティションに入る
func newOrderEvent(eventID string, topic string, o model.Order, items []model.OrderItem, now time.Time) (model.OutboxEvent, error) {
	p := orderEventPayload{
		EventID:    eventID,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		Items:      make([]orderEventItem, 0, len(items)),
		OccurredAt: now.UTC(),
	}
	for _, it := range items {
		p.Items = append(p.Items, orderEventItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	b, err := json.Marshal(p)
	if err != nil {
		return model.OutboxEvent{}, err
	}

	return model.OutboxEvent{
		EventID:   eventID,
		Topic:     topic,
		Key:       strconv.FormatInt(o.ID, 10),
		Payload:   string(b),
		CreatedAt: now,
	}, nil
}

type statusSnapshot struct {
	Status model.OrderStatus `json:"status"`
}

func statusJSON(s model.OrderStatus) string {
	b, _ := json.Marshal(statusSnapshot{Status: s})
	return string(b)
}
