//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_created_test
package order_created

import (
	"context"

	"github.com/IBM/sarama"
	"orders/internal/entities"
	"orders/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ProcessOrder(ctx context.Context, order entities.Order) (*entities.ProcessedOrder, error)
}

type DeadLetter interface {
	Enabled() bool
	Publish(ctx context.Context, msg *sarama.ConsumerMessage, reason error) error
}
