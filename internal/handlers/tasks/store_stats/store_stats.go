package store_stats

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProcessedOrdersStored = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "processed_orders_stored",
		Help: "Number of processed orders held in memory",
	},
)

type Store interface {
	Len() int
}

type StoreStats struct {
	store    Store
	interval time.Duration
}

func New(store Store, interval time.Duration) *StoreStats {
	return &StoreStats{
		store:    store,
		interval: interval,
	}
}

// TTL возвращает интервал между выполнениями задачи.
func (s *StoreStats) TTL() time.Duration {
	return s.interval
}

// Do выставляет gauge по текущему размеру хранилища.
func (s *StoreStats) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ProcessedOrdersStored.Set(float64(s.store.Len()))
	return nil
}

func (s *StoreStats) Info() string {
	return "processed orders store stats"
}
