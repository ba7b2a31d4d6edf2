//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/google/wire"
	deadLetterGateway "orders/internal/gateway/kafka/dead_letter"
	orderCreatedGateway "orders/internal/gateway/kafka/order_created"
	orderCreatedHandler "orders/internal/handlers/kafka-consumer/order_created"
	"orders/internal/handlers/tasks/store_stats"
	"orders/internal/pkg/config"
	"orders/internal/pkg/factory/order_identity"
	"orders/internal/pkg/health"
	processedRepo "orders/internal/repository/processed"
	ingressService "orders/internal/service/ingress"
	processorService "orders/internal/service/processor"
	"orders/pkg/logger"
)

// InitializeIngressApp для HTTP приема заказов (cmd/ingress)
func InitializeIngressApp(
	ctx context.Context,
	log logger.Logger,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*IngressApp, error) {
	wire.Build(
		provideOrderCreatedPublisher,
		order_identity.New,
		provideServiceIngress,
		provideHealthChecker,

		provideSystemMetricsTask,
		provideIngressTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(IngressApp), "*"),

		wire.Bind(new(ServiceIngress), new(*ingressService.Service)),
		wire.Bind(new(ingressService.Publisher), new(*orderCreatedGateway.Publisher)),
		wire.Bind(new(ingressService.IdentityFactory), new(*order_identity.IdentityFactory)),
		wire.Bind(new(HealthChecker), new(*health.Checker)),
	)
	return &IngressApp{}, nil
}

// InitializeProcessorApp для обработчика заказов (cmd/processor).
// producer может быть nil, тогда dead letter выключен.
func InitializeProcessorApp(
	ctx context.Context,
	log logger.Logger,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*ProcessorApp, error) {
	wire.Build(
		processedRepo.New,
		provideClock,
		provideServiceProcessor,
		provideDeadLetterPublisher,
		provideOrderCreatedHandler,
		provideHealthChecker,

		provideSystemMetricsTask,
		provideStoreStatsTask,
		provideProcessorTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(ProcessorApp), "*"),

		wire.Bind(new(ServiceProcessor), new(*processorService.Service)),
		wire.Bind(new(processorService.Repository), new(*processedRepo.Repository)),
		wire.Bind(new(processorService.Clock), new(*order_identity.IdentityFactory)),
		wire.Bind(new(orderCreatedHandler.Service), new(*processorService.Service)),
		wire.Bind(new(orderCreatedHandler.DeadLetter), new(*deadLetterGateway.Publisher)),
		wire.Bind(new(store_stats.Store), new(*processedRepo.Repository)),
		wire.Bind(new(HealthChecker), new(*health.Checker)),
	)
	return &ProcessorApp{}, nil
}
