package converters

import (
	"orders/internal/entities"
	"orders/internal/generated/dto"
)

func ToProcessedOrderDTO(order entities.ProcessedOrder) dto.ProcessedOrder {
	return dto.ProcessedOrder{
		ID:          order.ID,
		ProductID:   order.ProductID,
		Quantity:    order.Quantity,
		Price:       order.Price,
		CustomerID:  order.CustomerID,
		Status:      dto.OrderStatus(order.Status.String()),
		CreatedAt:   order.CreatedAt.UTC(),
		ProcessedAt: order.ProcessedAt.UTC(),
	}
}

// ToProcessedOrderDTOs никогда не возвращает nil, чтобы пустой список кодировался как [].
func ToProcessedOrderDTOs(orders []entities.ProcessedOrder) []dto.ProcessedOrder {
	out := make([]dto.ProcessedOrder, len(orders))
	for i, order := range orders {
		out[i] = ToProcessedOrderDTO(order)
	}
	return out
}
