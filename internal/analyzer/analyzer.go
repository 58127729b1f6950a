package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/milanbalazs/contsim/internal/config"
)

// Usage is the averaged resource consumption of one container over a
// wall-clock monitoring window. It is the measured counterpart of a
// scenario's nominal demand and can be fed back into scenario sizing.
type Usage struct {
	Target string `json:"target"`

	AvgCPUCores float64 `json:"average_cpu_cores"`
	AvgRAMMB    float64 `json:"average_ram_usage_mb"`
	AvgDiskMB   float64 `json:"average_disk_usage_mb"`
	TotalRxMB   float64 `json:"total_rx_mb"`
	TotalTxMB   float64 `json:"total_tx_mb"`

	Samples int           `json:"samples"`
	Window  time.Duration `json:"window"`
}

// Analyzer samples a live container's CPU, RAM, disk and network usage over
// a time window and computes averages.
type Analyzer interface {
	Analyze(ctx context.Context, target string) (*Usage, error)
	Backend() string
}

// New creates the analyzer selected by the configuration.
func New(cfg config.AnalyzerConfig) (Analyzer, error) {
	switch cfg.Backend {
	case "", "docker":
		return NewDockerAnalyzer(cfg.Window, cfg.Period)
	case "prometheus":
		return NewPromAnalyzer(cfg.Endpoint, cfg.Window, cfg.Period)
	default:
		return nil, fmt.Errorf("unknown analyzer backend %q", cfg.Backend)
	}
}

const bytesPerMB = 1024 * 1024

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
