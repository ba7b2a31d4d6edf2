package entities

import "time"

type Order struct {
	ID         string
	ProductID  string
	Quantity   int
	Price      float64
	CustomerID string
	Status     OrderStatusType
	CreatedAt  time.Time
}

// ProcessedOrder - заказ, принятый в обработку на стороне processor.
type ProcessedOrder struct {
	Order
	ProcessedAt time.Time
}

type OrderStatusType string

const (
	OrderPending    OrderStatusType = "PENDING"
	OrderProcessing OrderStatusType = "PROCESSING"
	OrderCompleted  OrderStatusType = "COMPLETED"
	OrderFailed     OrderStatusType = "FAILED"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderFailed:
		return true
	default:
		return false
	}
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderCompleted || s == OrderFailed
}

// CanTransitionTo: PENDING -> PROCESSING -> COMPLETED | FAILED
func (s OrderStatusType) CanTransitionTo(next OrderStatusType) bool {
	switch s {
	case OrderPending:
		return next == OrderProcessing
	case OrderProcessing:
		return next == OrderCompleted || next == OrderFailed
	default:
		return false
	}
}

// OrderCreate - сырой запрос на создание заказа, nil означает "поле не передано".
type OrderCreate struct {
	ProductID  *string
	Quantity   *int
	Price      *float64
	CustomerID *string
}
