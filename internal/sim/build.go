package sim

import (
	"github.com/milanbalazs/contsim/internal/config"
	"github.com/milanbalazs/contsim/internal/model"
)

// Cluster is the materialized scenario: model entities sharing one clock.
type Cluster struct {
	Clock      *Clock
	Nodes      []*model.Node
	Containers []*model.Container
	Workloads  []*model.WorkloadRequest
}

// Build constructs model entities from a scenario, in declaration order.
// Containers that declare no duration stay up for the whole horizon.
func Build(sc *config.Scenario, horizon int) *Cluster {
	clock := NewClock()

	cluster := &Cluster{Clock: clock}

	for _, spec := range sc.Nodes {
		cluster.Nodes = append(cluster.Nodes, model.NewNode(clock, spec.Name, spec.Capacity))
	}

	for _, spec := range sc.Containers {
		c := model.NewContainer(clock, spec.Name, spec.Capacity)
		c.Delay = spec.Delay
		c.Duration = spec.Duration
		if c.Duration == 0 {
			c.Duration = float64(horizon)
		}
		c.Fluctuation = spec.Fluctuation
		cluster.Containers = append(cluster.Containers, c)
	}

	for _, spec := range sc.Workloads {
		cluster.Workloads = append(cluster.Workloads, model.NewWorkloadRequest(
			spec.Demand, spec.Fluctuation, spec.Delay, spec.Duration, spec.Priority, spec.Type))
	}

	return cluster
}
