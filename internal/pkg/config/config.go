package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultIngressPort   = "3000"
	defaultProcessorPort = "3001"

	defaultRequestTimeout   = 10 * time.Second
	defaultRateLimiterQPS   = 100.0 / (15 * 60) // 100 запросов за 15 минут
	defaultRateLimiterBurst = 100

	defaultBrokers         = "localhost:9092"
	defaultTopic           = "order_queue"
	defaultConsumerGroup   = "order-processor"
	defaultSaramaVersion   = "2.8.0"
	defaultProducerTimeout = 5 * time.Second
	defaultProcessTimeout  = 5 * time.Second

	defaultHeapThreshold = 200 * 1024 * 1024
	defaultRSSThreshold  = 3000 * 1024 * 1024
	defaultDiskPercent   = 90.0
	defaultDiskPath      = "/"

	defaultMetricsInterval = 15 * time.Second
)

type (
	Tasks struct {
		MetricsInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   float64       // пополнение token bucket, токенов в секунду
		RateLimiterBurst int           // емкость token bucket
		PprofEnabled     bool
		PprofPort        string
	}

	Log struct {
		Level string
	}

	Kafka struct {
		Brokers         []string
		Topic           string
		ConsumerGroup   string
		DeadLetterTopic string // пустой - отбракованные сообщения только логируются
		ProducerTimeout time.Duration
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderCreated OrderCreated
	}

	OrderCreated struct {
		ProcessTimeout time.Duration
	}

	Health struct {
		HeapThresholdBytes   uint64
		RSSThresholdBytes    uint64
		DiskThresholdPercent float64
		DiskPath             string
	}

	Config struct {
		Tasks  Tasks
		Server HTTPServer
		Log    Log
		Kafka  Kafka
		Health Health
	}
)

// LoadIngress читает конфиг для cmd/ingress.
func LoadIngress() (*Config, error) {
	cfg, err := loadFromEnv(defaultIngressPort)
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadProcessor читает конфиг для cmd/processor: дополнительно нужна consumer group.
func LoadProcessor() (*Config, error) {
	cfg, err := loadFromEnv(defaultProcessorPort)
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	if err := validateConsumer(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv(defaultPort string) (*Config, error) {
	metricsInterval, err := osGetEnvDuration("BACKGROUND_METRICS_INTERVAL", defaultMetricsInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetFloat("MIDDLEWARE_RATE_LIMIT_QPS", defaultRateLimiterQPS)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST", defaultRateLimiterBurst)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT", true)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	producerTimeout, err := osGetEnvDuration("KAFKA_PRODUCER_TIMEOUT", defaultProducerTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderCreatedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_CREATED_PROCESS_TIMEOUT", defaultProcessTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	heapThreshold, err := osGetUint("HEALTH_HEAP_THRESHOLD_BYTES", defaultHeapThreshold)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rssThreshold, err := osGetUint("HEALTH_RSS_THRESHOLD_BYTES", defaultRSSThreshold)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	diskPercent, err := osGetFloat("HEALTH_DISK_THRESHOLD_PERCENT", defaultDiskPercent)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			MetricsInterval: metricsInterval,
		},
		Server: HTTPServer{
			Port:             osGetString("PORT", defaultPort),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Log: Log{
			Level: osGetString("LOG_LEVEL", "info"),
		},
		Kafka: Kafka{
			Brokers:         splitList(osGetString("KAFKA_BROKERS", defaultBrokers)),
			Topic:           osGetString("KAFKA_TOPIC", defaultTopic),
			ConsumerGroup:   osGetString("KAFKA_CONSUMER_GROUP", defaultConsumerGroup),
			DeadLetterTopic: strings.TrimSpace(os.Getenv("KAFKA_DEAD_LETTER_TOPIC")),
			ProducerTimeout: producerTimeout,
			Sarama: Sarama{
				Version:                   osGetString("KAFKA_SARAMA_VERSION", defaultSaramaVersion),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderCreated: OrderCreated{
					ProcessTimeout: orderCreatedTimeout,
				},
			},
		},
		Health: Health{
			HeapThresholdBytes:   heapThreshold,
			RSSThresholdBytes:    rssThreshold,
			DiskThresholdPercent: diskPercent,
			DiskPath:             osGetString("HEALTH_DISK_PATH", defaultDiskPath),
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimiterQPS <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS must be positive")
	}
	if cfg.Server.RateLimiterBurst <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST must be positive")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Tasks.MetricsInterval <= 0 {
		return errors.New("BACKGROUND_METRICS_INTERVAL must be positive")
	}

	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Kafka.ProducerTimeout <= 0 {
		return errors.New("KAFKA_PRODUCER_TIMEOUT must be positive")
	}

	if cfg.Health.HeapThresholdBytes == 0 {
		return errors.New("HEALTH_HEAP_THRESHOLD_BYTES must be positive")
	}
	if cfg.Health.RSSThresholdBytes == 0 {
		return errors.New("HEALTH_RSS_THRESHOLD_BYTES must be positive")
	}
	if cfg.Health.DiskThresholdPercent <= 0 || cfg.Health.DiskThresholdPercent > 100 {
		return errors.New("HEALTH_DISK_THRESHOLD_PERCENT must be in (0, 100]")
	}
	if cfg.Health.DiskPath == "" {
		return errors.New("HEALTH_DISK_PATH is required")
	}

	return nil
}

func validateConsumer(cfg *Config) error {
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.DeadLetterTopic == cfg.Kafka.Topic {
		return errors.New("KAFKA_DEAD_LETTER_TOPIC must differ from KAFKA_TOPIC")
	}
	if cfg.Kafka.Handlers.OrderCreated.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_ORDER_CREATED_PROCESS_TIMEOUT must be positive")
	}
	return nil
}

func osGetString(s, def string) string {
	val := strings.TrimSpace(os.Getenv(s))
	if val == "" {
		return def
	}
	return val
}

func osGetInt(s string, def int) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetUint(s string, def uint64) (uint64, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid uint format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string, def float64) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string, def bool) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
