package processed

import (
	"context"
	"fmt"
	"sync"

	"orders/internal/entities"
	"orders/internal/repository"
)

// Repository хранит обработанные заказы в памяти процесса в порядке поступления.
// Живет столько же, сколько процесс; создается при старте и передается явно.
type Repository struct {
	mu     sync.RWMutex
	orders []entities.ProcessedOrder
	index  map[string]int // id -> позиция в orders
}

func New() *Repository {
	return &Repository{
		orders: make([]entities.ProcessedOrder, 0),
		index:  make(map[string]int),
	}
}

func (r *Repository) Append(ctx context.Context, order entities.ProcessedOrder) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("append processed order %s: %w", order.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[order.ID]; ok {
		return fmt.Errorf("append processed order %s: %w", order.ID, repository.ErrDuplicate)
	}

	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, order)
	return nil
}

// List отдает копию: читатель не видит записей, добавленных после вызова,
// и не держит блокировку дольше копирования.
func (r *Repository) List(ctx context.Context) ([]entities.ProcessedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list processed orders: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.ProcessedOrder, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.ProcessedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get processed order %s: %w", id, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("get processed order %s: %w", id, repository.ErrNotFound)
	}

	order := r.orders[pos]
	return &order, nil
}

// UpdateStatus меняет статус, только если текущий равен expected (compare-and-set).
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id string,
	expected entities.OrderStatusType,
	next entities.OrderStatusType,
) (*entities.ProcessedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("update processed order %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("update processed order %s: %w", id, repository.ErrNotFound)
	}
	if r.orders[pos].Status != expected {
		return nil, fmt.Errorf("update processed order %s: status is %s, expected %s: %w",
			id, r.orders[pos].Status, expected, repository.ErrStatusConflict)
	}

	r.orders[pos].Status = next
	order := r.orders[pos]
	return &order, nil
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders)
}
