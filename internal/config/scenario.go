package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milanbalazs/contsim/internal/model"
)

// Scenario is the operator-declared simulation input: the cluster shape and
// the workloads to place onto it.
type Scenario struct {
	Name       string          `yaml:"name"`
	Nodes      []NodeSpec      `yaml:"nodes"`
	Containers []ContainerSpec `yaml:"containers"`
	Workloads  []WorkloadSpec  `yaml:"workloads"`
}

type NodeSpec struct {
	Name     string          `yaml:"name"`
	Capacity model.Resources `yaml:"capacity"`
}

type ContainerSpec struct {
	Name        string                    `yaml:"name"`
	Capacity    model.Resources           `yaml:"capacity"`
	Delay       float64                   `yaml:"delay"`
	Duration    float64                   `yaml:"duration"` // 0 = whole horizon
	Fluctuation model.FluctuationPercents `yaml:"fluctuation"`
}

type WorkloadSpec struct {
	Type        string                    `yaml:"type"`
	Demand      model.Resources           `yaml:"demand"`
	Fluctuation model.FluctuationPercents `yaml:"fluctuation"`
	Delay       float64                   `yaml:"delay"`
	Duration    float64                   `yaml:"duration"`
	Priority    int                       `yaml:"priority"`
}

// LoadScenario reads and validates a YAML scenario file. Environment
// variables in the file are expanded before parsing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks structural invariants: at least one container, unique
// names, and strictly positive capacities.
func (s *Scenario) Validate() error {
	if len(s.Containers) == 0 {
		return fmt.Errorf("no containers declared")
	}

	names := make(map[string]bool)
	for _, n := range s.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node with empty name")
		}
		if names["node/"+n.Name] {
			return fmt.Errorf("duplicate node name %q", n.Name)
		}
		names["node/"+n.Name] = true
		if err := checkCapacity(n.Capacity); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
	}
	for _, c := range s.Containers {
		if c.Name == "" {
			return fmt.Errorf("container with empty name")
		}
		if names["container/"+c.Name] {
			return fmt.Errorf("duplicate container name %q", c.Name)
		}
		names["container/"+c.Name] = true
		if err := checkCapacity(c.Capacity); err != nil {
			return fmt.Errorf("container %q: %w", c.Name, err)
		}
	}
	for i, w := range s.Workloads {
		if err := checkFluctuation(w.Fluctuation); err != nil {
			return fmt.Errorf("workload %d (%s): %w", i, w.Type, err)
		}
	}
	return nil
}

func checkCapacity(r model.Resources) error {
	if r.CPU <= 0 || r.RAM <= 0 || r.Disk <= 0 || r.BW <= 0 {
		return fmt.Errorf("capacity must be positive on every dimension, got cpu=%g ram=%d disk=%d bw=%d",
			r.CPU, r.RAM, r.Disk, r.BW)
	}
	return nil
}

func checkFluctuation(f model.FluctuationPercents) error {
	for _, pct := range []float64{f.CPU, f.RAM, f.Disk, f.BW} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("fluctuation percent %g outside [0, 100]", pct)
		}
	}
	return nil
}
