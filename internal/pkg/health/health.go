package health

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/process"
	"orders/internal/pkg/config"
)

const (
	CheckMemoryHeap = "memory_heap"
	CheckMemoryRSS  = "memory_rss"
	CheckStorage    = "storage"
)

// Probe возвращает текущее значение показателя.
type Probe func(ctx context.Context) (float64, error)

// Check считается пройденным, если значение не превышает Threshold.
type Check struct {
	Name      string
	Threshold float64
	Probe     Probe
}

type Result struct {
	Name      string
	Up        bool
	Value     float64
	Threshold float64
	Err       error
}

type Checker struct {
	checks []Check
}

// New собирает проверки heap, RSS процесса и заполненности диска.
func New(cfg config.Health) *Checker {
	return NewWithChecks(
		Check{Name: CheckMemoryHeap, Threshold: float64(cfg.HeapThresholdBytes), Probe: HeapProbe},
		Check{Name: CheckMemoryRSS, Threshold: float64(cfg.RSSThresholdBytes), Probe: RSSProbe},
		Check{Name: CheckStorage, Threshold: cfg.DiskThresholdPercent, Probe: DiskUsedPercentProbe(cfg.DiskPath)},
	)
}

func NewWithChecks(checks ...Check) *Checker {
	return &Checker{checks: checks}
}

// Check выполняет все проверки; ok == false, если хотя бы одна не прошла или упала.
func (c *Checker) Check(ctx context.Context) (bool, []Result) {
	ok := true
	results := make([]Result, 0, len(c.checks))

	for _, check := range c.checks {
		value, err := check.Probe(ctx)
		result := Result{
			Name:      check.Name,
			Value:     value,
			Threshold: check.Threshold,
			Err:       err,
			Up:        err == nil && value <= check.Threshold,
		}
		if !result.Up {
			ok = false
		}
		results = append(results, result)
	}

	return ok, results
}

func HeapProbe(context.Context) (float64, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc), nil
}

func RSSProbe(ctx context.Context) (float64, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, fmt.Errorf("open current process: %w", err)
	}

	info, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("read process memory: %w", err)
	}
	return float64(info.RSS), nil
}

func DiskUsedPercentProbe(path string) Probe {
	return func(ctx context.Context) (float64, error) {
		usage, err := disk.UsageWithContext(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("disk usage of %s: %w", path, err)
		}
		return usage.UsedPercent, nil
	}
}
