package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/milanbalazs/contsim/internal/config"
	"github.com/milanbalazs/contsim/internal/logging"
	"github.com/milanbalazs/contsim/internal/model"
	"github.com/milanbalazs/contsim/internal/scheduler"
)

// Placement records where one workload unit ended up.
type Placement struct {
	WorkloadID   int64  `json:"workload_id"`
	WorkloadType string `json:"workload_type"`
	Unit         string `json:"unit"`
	Tick         int    `json:"tick"`
}

// TickUsage is the observed and nominal usage of one execution unit at one
// tick. Observed values come from fluctuation sampling of active workloads.
type TickUsage struct {
	Tick     int             `json:"tick"`
	Unit     string          `json:"unit"`
	Observed model.Resources `json:"observed"`
	Nominal  model.Resources `json:"nominal"`
}

// RunResult is the output of a completed simulation run.
type RunResult struct {
	Scenario        string `json:"scenario"`
	Horizon         int    `json:"horizon"`
	UseReservations bool   `json:"use_reservations"`

	ContainerPlacements []Placement `json:"container_placements"`
	NodePlacements      []Placement `json:"node_placements,omitempty"`

	// Forecasts holds the committed reservation ledger per container name,
	// tick to nominal commitment, as it stood after placement.
	Forecasts map[string]map[int]model.Resources `json:"forecasts,omitempty"`

	Usage []TickUsage `json:"usage"`
}

// Runner drives one simulation: batch placement at tick 0, then a
// tick-by-tick workload lifecycle over the horizon.
type Runner struct {
	cluster *Cluster
	cfg     config.SimulationConfig
	log     *logrus.Logger
}

// NewRunner creates a runner over a built cluster.
func NewRunner(cluster *Cluster, cfg config.SimulationConfig) *Runner {
	return &Runner{
		cluster: cluster,
		cfg:     cfg,
		log:     logging.GetLogger(),
	}
}

// Run places containers onto nodes (when nodes are declared), places
// workload requests onto containers, then steps the clock through the
// horizon, starting and stopping workloads and sampling their fluctuated
// usage. A placement failure aborts the run immediately.
func (r *Runner) Run(scenarioName string) (*RunResult, error) {
	result := &RunResult{
		Scenario:        scenarioName,
		Horizon:         r.cfg.Horizon,
		UseReservations: r.cfg.UseReservations,
		Forecasts:       make(map[string]map[int]model.Resources),
	}

	if len(r.cluster.Nodes) > 0 {
		nb := scheduler.NewNodeBalancer(r.cluster.Containers, r.cluster.Nodes, r.cfg.UseReservations)
		if err := nb.Assign(); err != nil {
			return nil, fmt.Errorf("placing containers onto nodes: %w", err)
		}
		result.NodePlacements = placementsOf(nodeUnits(r.cluster.Nodes))
	}

	cb := scheduler.NewContainerBalancer(r.cluster.Workloads, r.cluster.Containers, r.cfg.UseReservations)
	if err := cb.Assign(); err != nil {
		return nil, fmt.Errorf("placing workloads onto containers: %w", err)
	}
	result.ContainerPlacements = placementsOf(containerUnits(r.cluster.Containers))

	for _, c := range r.cluster.Containers {
		snapshot := make(map[int]model.Resources)
		for _, t := range cb.Forecast().Ticks(c) {
			snapshot[t] = cb.Forecast().At(c, t)
		}
		if len(snapshot) > 0 {
			result.Forecasts[c.Name()] = snapshot
		}
	}

	r.step(result)
	return result, nil
}

// step advances the clock through the horizon, reserving capacity on hosts
// while workloads are active and releasing it when their window closes.
func (r *Runner) step(result *RunResult) {
	hosts := hostIndex(r.cluster)
	running := make(map[model.WorkloadUnit]bool)

	for t := r.cluster.Clock.Now(); t < r.cfg.Horizon; t = r.cluster.Clock.Advance() {
		perUnit := make(map[model.ExecutionUnit]*TickUsage)

		for w, h := range hosts {
			active := activeAt(w, t)
			switch {
			case active && !running[w]:
				h.Reserve(w.Demand())
				running[w] = true
				r.log.WithFields(logrus.Fields{"workload": w.ID(), "unit": h.Name(), "tick": t}).
					Debug("workload started")
			case !active && running[w]:
				h.Release(w.Demand())
				running[w] = false
				r.log.WithFields(logrus.Fields{"workload": w.ID(), "unit": h.Name(), "tick": t}).
					Debug("workload finished")
			}

			if !active {
				continue
			}

			u := perUnit[h]
			if u == nil {
				u = &TickUsage{Tick: t, Unit: h.Name()}
				perUnit[h] = u
			}
			u.Nominal = u.Nominal.Add(w.Demand())
			if s, ok := w.(usageSampler); ok {
				u.Observed = u.Observed.Add(s.SampledUsage())
			}
		}

		// Deterministic order: containers first, then nodes, declaration order.
		for _, c := range r.cluster.Containers {
			if u := perUnit[c]; u != nil {
				result.Usage = append(result.Usage, *u)
			}
		}
		for _, n := range r.cluster.Nodes {
			if u := perUnit[n]; u != nil {
				result.Usage = append(result.Usage, *u)
			}
		}
	}

	// Close out anything still running at the horizon.
	for w, h := range hosts {
		if running[w] {
			h.Release(w.Demand())
			running[w] = false
		}
	}
}

type usageSampler interface {
	SampledUsage() model.Resources
}

// activeAt treats the window as half-open: a workload is active from its
// start tick up to, but not including, its end tick.
func activeAt(w model.WorkloadUnit, tick int) bool {
	start, end := w.Window()
	return float64(tick) >= start && float64(tick) < end
}

// host is an execution unit whose live capacity can be debited while a
// workload runs and credited back when it stops.
type host interface {
	model.ExecutionUnit
	Reserve(model.Resources)
	Release(model.Resources)
}

// hostIndex derives the workload-to-host mapping from the units' attachment
// indexes populated during placement.
func hostIndex(cluster *Cluster) map[model.WorkloadUnit]host {
	hosts := make(map[model.WorkloadUnit]host)
	for _, c := range cluster.Containers {
		for _, ws := range c.Attached() {
			for _, w := range ws {
				hosts[w] = c
			}
		}
	}
	for _, n := range cluster.Nodes {
		for _, ws := range n.Attached() {
			for _, w := range ws {
				hosts[w] = n
			}
		}
	}
	return hosts
}

type attachedUnit interface {
	model.ExecutionUnit
	Attached() map[int][]model.WorkloadUnit
}

func containerUnits(cs []*model.Container) []attachedUnit {
	units := make([]attachedUnit, len(cs))
	for i, c := range cs {
		units[i] = c
	}
	return units
}

func nodeUnits(ns []*model.Node) []attachedUnit {
	units := make([]attachedUnit, len(ns))
	for i, n := range ns {
		units[i] = n
	}
	return units
}

// placementsOf flattens attachment indexes into placement records, ordered
// by unit declaration order then workload identifier.
func placementsOf(units []attachedUnit) []Placement {
	var out []Placement
	for _, u := range units {
		for tick, ws := range u.Attached() {
			for _, w := range ws {
				out = append(out, Placement{
					WorkloadID:   w.ID(),
					WorkloadType: w.WorkloadType(),
					Unit:         u.Name(),
					Tick:         tick,
				})
			}
		}
	}
	sortPlacements(out)
	return out
}

func sortPlacements(ps []Placement) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].WorkloadID < ps[j].WorkloadID
	})
}
