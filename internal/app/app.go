package app

import (
	"context"

	"github.com/IBM/sarama"
	deadLetterGateway "orders/internal/gateway/kafka/dead_letter"
	orderCreatedGateway "orders/internal/gateway/kafka/order_created"
	orderCreatedHandler "orders/internal/handlers/kafka-consumer/order_created"
	"orders/internal/handlers/rest/health_get"
	"orders/internal/handlers/rest/order_get"
	"orders/internal/handlers/rest/order_post"
	"orders/internal/handlers/rest/order_status_put"
	"orders/internal/handlers/rest/orders_get"
	"orders/internal/handlers/tasks/store_stats"
	"orders/internal/pkg/config"
	"orders/internal/pkg/factory/order_identity"
	"orders/internal/pkg/health"
	"orders/internal/pkg/metrics"
	processedRepo "orders/internal/repository/processed"
	ingressService "orders/internal/service/ingress"
	processorService "orders/internal/service/processor"
	"orders/pkg/background"
	"orders/pkg/logger"
)

type IngressApp struct {
	ServiceIngress    ServiceIngress
	Publisher         *orderCreatedGateway.Publisher
	HealthChecker     HealthChecker
	BackgroundWorkers *background.Worker
}

type ProcessorApp struct {
	ServiceProcessor    ServiceProcessor
	Repository          *processedRepo.Repository
	DeadLetter          *deadLetterGateway.Publisher
	OrderCreatedHandler *orderCreatedHandler.Handler
	HealthChecker       HealthChecker
	BackgroundWorkers   *background.Worker
}

type ServiceIngress interface {
	order_post.Service
}

type ServiceProcessor interface {
	orders_get.Service
	order_get.Service
	order_status_put.Service
}

type HealthChecker interface {
	health_get.Checker
}

func provideOrderCreatedPublisher(producer sarama.SyncProducer, cfg *config.Config) *orderCreatedGateway.Publisher {
	return orderCreatedGateway.New(producer, cfg.Kafka.Topic)
}

func provideServiceIngress(
	publisher ingressService.Publisher,
	identity ingressService.IdentityFactory,
) *ingressService.Service {
	return ingressService.New(publisher, identity)
}

// provideClock - processedAt берется из того же UTC источника, что и createdAt в ingress.
func provideClock() *order_identity.IdentityFactory {
	return order_identity.New()
}

func provideServiceProcessor(
	repository processorService.Repository,
	clock processorService.Clock,
) *processorService.Service {
	return processorService.New(repository, clock)
}

func provideDeadLetterPublisher(producer sarama.SyncProducer, cfg *config.Config) *deadLetterGateway.Publisher {
	if cfg.Kafka.DeadLetterTopic == "" {
		return deadLetterGateway.New(nil, "")
	}
	return deadLetterGateway.New(producer, cfg.Kafka.DeadLetterTopic)
}

func provideOrderCreatedHandler(
	log logger.Logger,
	service orderCreatedHandler.Service,
	deadLetter orderCreatedHandler.DeadLetter,
	cfg *config.Config,
) *orderCreatedHandler.Handler {
	var opts []orderCreatedHandler.Option
	if !cfg.Kafka.Sarama.ConsumerOffsetsAutocommit {
		opts = append(opts, orderCreatedHandler.WithCommitOnAck())
	}
	return orderCreatedHandler.New(log, service, deadLetter, cfg.Kafka.Handlers.OrderCreated.ProcessTimeout, opts...)
}

func provideHealthChecker(cfg *config.Config) *health.Checker {
	return health.New(cfg.Health)
}

func provideSystemMetricsTask(cfg *config.Config) *metrics.SystemCollector {
	return metrics.NewSystemCollector(cfg.Tasks.MetricsInterval)
}

func provideStoreStatsTask(store store_stats.Store, cfg *config.Config) *store_stats.StoreStats {
	return store_stats.New(store, cfg.Tasks.MetricsInterval)
}

func provideIngressTaskList(systemMetrics *metrics.SystemCollector) []background.Task {
	return []background.Task{
		systemMetrics,
	}
}

func provideProcessorTaskList(systemMetrics *metrics.SystemCollector, storeStats *store_stats.StoreStats) []background.Task {
	return []background.Task{
		systemMetrics,
		storeStats,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
