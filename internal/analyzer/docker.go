package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// DockerAnalyzer polls container stats from the local Docker daemon.
type DockerAnalyzer struct {
	cli    *client.Client
	window time.Duration
	period time.Duration
}

// NewDockerAnalyzer connects to the Docker daemon via the standard
// environment (DOCKER_HOST etc.).
func NewDockerAnalyzer(window, period time.Duration) (*DockerAnalyzer, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	return &DockerAnalyzer{cli: cli, window: window, period: period}, nil
}

func (a *DockerAnalyzer) Backend() string { return "docker" }

// Analyze samples the container every period for the whole window and
// averages CPU and RAM; network totals come from the first and last sample.
func (a *DockerAnalyzer) Analyze(ctx context.Context, target string) (*Usage, error) {
	deadline := time.Now().Add(a.window)

	var (
		cpuSamples []float64
		ramSamples []float64
		first      *types.StatsJSON
		last       *types.StatsJSON
	)

	for time.Now().Before(deadline) {
		stat, err := a.sample(ctx, target)
		if err != nil {
			return nil, err
		}

		cpuSamples = append(cpuSamples, cpuCoresUsed(stat))
		ramSamples = append(ramSamples, ramUsageMB(stat))
		if first == nil {
			first = stat
		}
		last = stat

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.period):
		}
	}

	if first == nil {
		return nil, fmt.Errorf("no samples collected for %q in %s", target, a.window)
	}

	rxMB, txMB := networkUsageMB(first, last)

	diskMB, err := a.diskUsageMB(ctx, target)
	if err != nil {
		return nil, err
	}

	return &Usage{
		Target:      target,
		AvgCPUCores: mean(cpuSamples),
		AvgRAMMB:    mean(ramSamples),
		AvgDiskMB:   diskMB,
		TotalRxMB:   rxMB,
		TotalTxMB:   txMB,
		Samples:     len(cpuSamples),
		Window:      a.window,
	}, nil
}

func (a *DockerAnalyzer) sample(ctx context.Context, target string) (*types.StatsJSON, error) {
	resp, err := a.cli.ContainerStats(ctx, target, false)
	if err != nil {
		return nil, fmt.Errorf("fetching stats for %q: %w", target, err)
	}
	defer resp.Body.Close()

	var stat types.StatsJSON
	if err := json.NewDecoder(resp.Body).Decode(&stat); err != nil {
		return nil, fmt.Errorf("decoding stats for %q: %w", target, err)
	}
	return &stat, nil
}

func (a *DockerAnalyzer) diskUsageMB(ctx context.Context, target string) (float64, error) {
	info, _, err := a.cli.ContainerInspectWithRaw(ctx, target, true)
	if err != nil {
		return 0, fmt.Errorf("inspecting %q: %w", target, err)
	}
	if info.SizeRw == nil {
		return 0, nil
	}
	return float64(*info.SizeRw) / bytesPerMB, nil
}

// cpuCoresUsed derives the number of cores actively used from the delta
// between the current and previous CPU counters.
func cpuCoresUsed(stat *types.StatsJSON) float64 {
	cpuDelta := float64(stat.CPUStats.CPUUsage.TotalUsage - stat.PreCPUStats.CPUUsage.TotalUsage)
	sysDelta := float64(stat.CPUStats.SystemUsage - stat.PreCPUStats.SystemUsage)
	if sysDelta <= 0 || cpuDelta < 0 {
		return 0
	}

	online := float64(stat.CPUStats.OnlineCPUs)
	if online == 0 {
		online = float64(len(stat.CPUStats.CPUUsage.PercpuUsage))
	}
	return cpuDelta / sysDelta * online
}

// ramUsageMB reports working-set memory: usage minus page cache.
func ramUsageMB(stat *types.StatsJSON) float64 {
	usage := stat.MemoryStats.Usage
	if cache, ok := stat.MemoryStats.Stats["cache"]; ok && cache < usage {
		usage -= cache
	}
	return float64(usage) / bytesPerMB
}

// networkUsageMB totals bytes transferred between two samples, summed over
// all interfaces.
func networkUsageMB(first, last *types.StatsJSON) (rxMB, txMB float64) {
	var firstRx, firstTx, lastRx, lastTx uint64
	for _, nw := range first.Networks {
		firstRx += nw.RxBytes
		firstTx += nw.TxBytes
	}
	for _, nw := range last.Networks {
		lastRx += nw.RxBytes
		lastTx += nw.TxBytes
	}
	if lastRx >= firstRx {
		rxMB = float64(lastRx-firstRx) / bytesPerMB
	}
	if lastTx >= firstTx {
		txMB = float64(lastTx-firstTx) / bytesPerMB
	}
	return rxMB, txMB
}
