package processor

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/entities"
	"orders/internal/repository"
)

type Service struct {
	repository Repository
	clock      Clock
}

func New(repository Repository, clock Clock) *Service {
	return &Service{
		repository: repository,
		clock:      clock,
	}
}

// ProcessOrder переводит заказ в PROCESSING и сохраняет его.
// createdAt не трогаем, processedAt не раньше createdAt.
func (s *Service) ProcessOrder(ctx context.Context, order entities.Order) (*entities.ProcessedOrder, error) {
	if err := validateIncoming(order); err != nil {
		return nil, err
	}

	processedAt := s.clock.Now()
	if processedAt.Before(order.CreatedAt) {
		processedAt = order.CreatedAt
	}

	order.Status = entities.OrderProcessing
	processed := entities.ProcessedOrder{
		Order:       order,
		ProcessedAt: processedAt,
	}

	err := s.repository.Append(ctx, processed)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("order %s: %w", order.ID, ErrAlreadyProcessed)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("store order %s: %w", order.ID, err)
		default:
			return nil, fmt.Errorf("%w: order %s: %w", ErrStorage, order.ID, err)
		}
	}

	return &processed, nil
}

func (s *Service) ListProcessedOrders(ctx context.Context) ([]entities.ProcessedOrder, error) {
	orders, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processed orders: %w", err)
	}
	return orders, nil
}

func (s *Service) GetProcessedOrder(ctx context.Context, id string) (*entities.ProcessedOrder, error) {
	order, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("get processed order %s: %w", id, err)
	}
	return order, nil
}

// UpdateOrderStatus завершает обработку: PROCESSING -> COMPLETED | FAILED.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatusType) (*entities.ProcessedOrder, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	current, err := s.GetProcessedOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repository.UpdateStatus(ctx, id, current.Status, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", id, ErrOrderNotFound)
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
		default:
			return nil, fmt.Errorf("update order %s status: %w", id, err)
		}
	}

	return updated, nil
}
