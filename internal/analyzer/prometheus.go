package analyzer

import (
	"context"
	"fmt"
	"time"

	promapi "github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"
)

// PromAnalyzer computes the same usage averages from a Prometheus endpoint
// scraping cAdvisor, instead of polling the Docker daemon directly.
type PromAnalyzer struct {
	api    promv1.API
	window time.Duration
	step   time.Duration
}

// NewPromAnalyzer connects to a Prometheus-compatible endpoint.
func NewPromAnalyzer(endpoint string, window, step time.Duration) (*PromAnalyzer, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("prometheus backend requires an endpoint")
	}
	cli, err := promapi.NewClient(promapi.Config{Address: endpoint})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	if step < time.Second {
		step = 15 * time.Second
	}
	return &PromAnalyzer{api: promv1.NewAPI(cli), window: window, step: step}, nil
}

func (a *PromAnalyzer) Backend() string { return "prometheus" }

// Analyze range-queries the cAdvisor series for the target container over
// the trailing window and averages them.
func (a *PromAnalyzer) Analyze(ctx context.Context, target string) (*Usage, error) {
	now := time.Now()
	r := promv1.Range{Start: now.Add(-a.window), End: now, Step: a.step}

	cpu, samples, err := a.rangeAvg(ctx,
		fmt.Sprintf(`rate(container_cpu_usage_seconds_total{name=%q}[%s])`, target, promDuration(a.step*2)), r)
	if err != nil {
		return nil, err
	}

	ramBytes, _, err := a.rangeAvg(ctx,
		fmt.Sprintf(`container_memory_working_set_bytes{name=%q}`, target), r)
	if err != nil {
		return nil, err
	}

	diskBytes, _, err := a.rangeAvg(ctx,
		fmt.Sprintf(`container_fs_usage_bytes{name=%q}`, target), r)
	if err != nil {
		return nil, err
	}

	rxBytes, err := a.instant(ctx,
		fmt.Sprintf(`increase(container_network_receive_bytes_total{name=%q}[%s])`, target, promDuration(a.window)), now)
	if err != nil {
		return nil, err
	}
	txBytes, err := a.instant(ctx,
		fmt.Sprintf(`increase(container_network_transmit_bytes_total{name=%q}[%s])`, target, promDuration(a.window)), now)
	if err != nil {
		return nil, err
	}

	if samples == 0 {
		return nil, fmt.Errorf("no series found for container %q", target)
	}

	return &Usage{
		Target:      target,
		AvgCPUCores: cpu,
		AvgRAMMB:    ramBytes / bytesPerMB,
		AvgDiskMB:   diskBytes / bytesPerMB,
		TotalRxMB:   rxBytes / bytesPerMB,
		TotalTxMB:   txBytes / bytesPerMB,
		Samples:     samples,
		Window:      a.window,
	}, nil
}

func (a *PromAnalyzer) rangeAvg(ctx context.Context, query string, r promv1.Range) (float64, int, error) {
	val, _, err := a.api.QueryRange(ctx, query, r)
	if err != nil {
		return 0, 0, fmt.Errorf("querying %q: %w", query, err)
	}
	avg, n := avgMatrix(val)
	return avg, n, nil
}

func (a *PromAnalyzer) instant(ctx context.Context, query string, ts time.Time) (float64, error) {
	val, _, err := a.api.Query(ctx, query, ts)
	if err != nil {
		return 0, fmt.Errorf("querying %q: %w", query, err)
	}
	if vec, ok := val.(prommodel.Vector); ok && len(vec) > 0 {
		return float64(vec[0].Value), nil
	}
	return 0, nil
}

// avgMatrix averages every sample of every series in a range-query result.
func avgMatrix(val prommodel.Value) (float64, int) {
	matrix, ok := val.(prommodel.Matrix)
	if !ok {
		return 0, 0
	}

	var sum float64
	var n int
	for _, stream := range matrix {
		for _, pair := range stream.Values {
			sum += float64(pair.Value)
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

func promDuration(d time.Duration) string {
	return prommodel.Duration(d).String()
}
