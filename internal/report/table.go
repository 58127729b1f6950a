package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	units "github.com/docker/go-units"

	"github.com/milanbalazs/contsim/internal/model"
	"github.com/milanbalazs/contsim/internal/sim"
)

// TableReporter outputs the run result as a formatted terminal table.
type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(ctx context.Context, result *sim.RunResult, meta Meta) error {
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "ContSim Placement Report\n")
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(r.w, "Scenario:     %s\n", meta.Scenario)
	fmt.Fprintf(r.w, "Reservations: %v\n", meta.UseReservations)
	fmt.Fprintf(r.w, "Horizon:      %d ticks\n", meta.Horizon)
	fmt.Fprintf(r.w, "Cluster:      %d nodes, %d containers, %d workloads\n",
		meta.Nodes, meta.Containers, meta.Workloads)
	fmt.Fprintf(r.w, "%s\n\n", strings.Repeat("=", 60))

	if len(result.NodePlacements) > 0 {
		fmt.Fprintf(r.w, "Container placements (container -> node)\n")
		r.placements(result.NodePlacements)
	}

	fmt.Fprintf(r.w, "Workload placements (workload -> container)\n")
	r.placements(result.ContainerPlacements)

	if len(result.Forecasts) > 0 {
		fmt.Fprintf(r.w, "Reservation peaks per container\n")
		fmt.Fprintf(r.w, "%-20s %8s %10s %10s %10s %12s\n",
			"Container", "CPU", "RAM", "Disk", "BW Mbps", "Ticks")
		fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 76))

		names := make([]string, 0, len(result.Forecasts))
		for name := range result.Forecasts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			peak, first, last := peakCommitment(result.Forecasts[name])
			fmt.Fprintf(r.w, "%-20s %8.2f %10s %10s %10d %6d..%d\n",
				name, peak.CPU, mb(peak.RAM), mb(peak.Disk), peak.BW, first, last)
		}
		fmt.Fprintf(r.w, "\n")
	}

	if avg := averageUsage(result.Usage); len(avg) > 0 {
		fmt.Fprintf(r.w, "Average observed usage per unit\n")
		fmt.Fprintf(r.w, "%-20s %8s %10s %10s %10s\n", "Unit", "CPU", "RAM", "Disk", "BW Mbps")
		fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 64))

		names := make([]string, 0, len(avg))
		for name := range avg {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			u := avg[name]
			fmt.Fprintf(r.w, "%-20s %8.2f %10s %10s %10d\n",
				name, u.CPU, mb(u.RAM), mb(u.Disk), u.BW)
		}
		fmt.Fprintf(r.w, "\n")
	}

	return nil
}

func (r *TableReporter) placements(ps []sim.Placement) {
	fmt.Fprintf(r.w, "%-6s %-30s %-20s %6s\n", "ID", "Workload", "Unit", "Tick")
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 66))
	for _, p := range ps {
		fmt.Fprintf(r.w, "%-6d %-30s %-20s %6d\n", p.WorkloadID, p.WorkloadType, p.Unit, p.Tick)
	}
	fmt.Fprintf(r.w, "\n")
}

// peakCommitment finds the per-dimension maximum over all committed ticks
// and the first and last committed tick.
func peakCommitment(forecast map[int]model.Resources) (peak model.Resources, first, last int) {
	started := false
	for t, r := range forecast {
		if !started || t < first {
			first = t
		}
		if !started || t > last {
			last = t
		}
		started = true
		if r.CPU > peak.CPU {
			peak.CPU = r.CPU
		}
		if r.RAM > peak.RAM {
			peak.RAM = r.RAM
		}
		if r.Disk > peak.Disk {
			peak.Disk = r.Disk
		}
		if r.BW > peak.BW {
			peak.BW = r.BW
		}
	}
	return peak, first, last
}

// averageUsage averages observed usage per unit across all recorded ticks.
func averageUsage(usage []sim.TickUsage) map[string]model.Resources {
	sums := make(map[string]model.Resources)
	counts := make(map[string]int64)
	for _, u := range usage {
		sums[u.Unit] = sums[u.Unit].Add(u.Observed)
		counts[u.Unit]++
	}

	out := make(map[string]model.Resources, len(sums))
	for name, sum := range sums {
		n := counts[name]
		out[name] = model.Resources{
			CPU:  sum.CPU / float64(n),
			RAM:  sum.RAM / n,
			Disk: sum.Disk / n,
			BW:   sum.BW / n,
		}
	}
	return out
}

func mb(v int64) string {
	return units.BytesSize(float64(v) * units.MiB)
}
