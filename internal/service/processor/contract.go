//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=processor_test
package processor

import (
	"context"
	"time"

	"orders/internal/entities"
)

type Repository interface {
	Append(ctx context.Context, order entities.ProcessedOrder) error
	List(ctx context.Context) ([]entities.ProcessedOrder, error)
	GetByID(ctx context.Context, id string) (*entities.ProcessedOrder, error)
	UpdateStatus(ctx context.Context, id string, expected, next entities.OrderStatusType) (*entities.ProcessedOrder, error)
}

type Clock interface {
	Now() time.Time
}
