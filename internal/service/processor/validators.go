package processor

import (
	"fmt"
	"math"

	"orders/internal/entities"
)

// validateIncoming проверяет то, что ingress обязан был гарантировать.
// Нарушение означает поврежденное или подделанное сообщение.
func validateIncoming(order entities.Order) error {
	switch {
	case order.ID == "":
		return fmt.Errorf("%w: missing id", ErrIntegrity)
	case order.ProductID == "":
		return fmt.Errorf("%w: order %s: empty productId", ErrIntegrity, order.ID)
	case order.CustomerID == "":
		return fmt.Errorf("%w: order %s: empty customerId", ErrIntegrity, order.ID)
	case order.Quantity < 1:
		return fmt.Errorf("%w: order %s: quantity %d < 1", ErrIntegrity, order.ID, order.Quantity)
	case math.IsNaN(order.Price) || math.IsInf(order.Price, 0) || order.Price < 0:
		return fmt.Errorf("%w: order %s: invalid price %v", ErrIntegrity, order.ID, order.Price)
	case order.CreatedAt.IsZero():
		return fmt.Errorf("%w: order %s: missing createdAt", ErrIntegrity, order.ID)
	case !order.Status.CanTransitionTo(entities.OrderProcessing):
		return fmt.Errorf("%w: order %s: status %s cannot move to %s",
			ErrIntegrity, order.ID, order.Status, entities.OrderProcessing)
	}
	return nil
}
