package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var (
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_bytes",
			Help: "System memory usage in bytes",
		},
	)

	ApplicationMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "application_memory_usage_bytes",
			Help: "Application memory usage in bytes (Go heap allocation)",
		},
	)

	ApplicationRSS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "application_rss_bytes",
			Help: "Resident set size of the process in bytes",
		},
	)
)

// SystemCollector - фоновая задача, обновляющая системные gauge'и.
type SystemCollector struct {
	interval time.Duration
	pid      int32
}

func NewSystemCollector(interval time.Duration) *SystemCollector {
	return &SystemCollector{
		interval: interval,
		pid:      int32(os.Getpid()), //nolint:gosec // pid помещается в int32
	}
}

func (s *SystemCollector) TTL() time.Duration {
	return s.interval
}

// Do снимает показатели; недоступные метрики не мешают обновить остальные.
func (s *SystemCollector) Do(ctx context.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	ApplicationMemoryUsage.Set(float64(m.HeapAlloc))

	var errs []error

	// интервал 0 - сравнение с предыдущим вызовом, без блокировки
	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("cpu percent: %w", err))
	case len(cpuPercent) > 0:
		SystemCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("virtual memory: %w", err))
	} else {
		SystemMemoryUsage.Set(float64(vmStat.Used))
	}

	proc, err := process.NewProcessWithContext(ctx, s.pid)
	if err == nil {
		var info *process.MemoryInfoStat
		info, err = proc.MemoryInfoWithContext(ctx)
		if err == nil {
			ApplicationRSS.Set(float64(info.RSS))
		}
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("process rss: %w", err))
	}

	return errors.Join(errs...)
}

func (s *SystemCollector) Info() string {
	return "system metrics"
}
