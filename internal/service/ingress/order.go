package ingress

import (
	"context"
	"fmt"

	"orders/internal/entities"
)

type Service struct {
	publisher Publisher
	identity  IdentityFactory
}

func New(publisher Publisher, identity IdentityFactory) *Service {
	return &Service{
		publisher: publisher,
		identity:  identity,
	}
}

// SubmitOrder валидирует запрос, присваивает id, createdAt и статус PENDING
// и синхронно публикует order_created. Возвращает заказ только после подтверждения брокера.
func (s *Service) SubmitOrder(ctx context.Context, req entities.OrderCreate) (*entities.Order, error) {
	if err := validateOrderCreate(req); err != nil {
		return nil, err
	}

	id, err := s.identity.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	order := entities.Order{
		ID:         id,
		ProductID:  *req.ProductID,
		Quantity:   *req.Quantity,
		Price:      *req.Price,
		CustomerID: *req.CustomerID,
		Status:     entities.OrderPending,
		CreatedAt:  s.identity.Now(),
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPublish, err)
	}

	return &order, nil
}
