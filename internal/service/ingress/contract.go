//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ingress_test
package ingress

import (
	"context"
	"time"

	"orders/internal/entities"
)

type Publisher interface {
	PublishOrderCreated(ctx context.Context, order entities.Order) error
}

type IdentityFactory interface {
	NewID() (string, error)
	Now() time.Time
}
