package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Simulation.UseReservations {
		t.Error("reservations must default to enabled")
	}
	if cfg.Simulation.Horizon <= 0 {
		t.Error("horizon must default to a positive value")
	}
	if cfg.Output.Format != "table" {
		t.Errorf("output format must default to table, got %q", cfg.Output.Format)
	}
	if cfg.Analyzer.Backend != "docker" {
		t.Errorf("analyzer backend must default to docker, got %q", cfg.Analyzer.Backend)
	}
	if cfg.Analyzer.Window <= 0 || cfg.Analyzer.Period <= 0 {
		t.Error("analyzer window and period must default to positive durations")
	}
}

const scenarioYAML = `
name: two-containers
nodes:
  - name: node-1
    capacity: {cpu: 16, ram_mb: 32768, disk_mb: 500, bw_mbps: 10000}
containers:
  - name: app-1
    capacity: {cpu: 4, ram_mb: 4096, disk_mb: 100, bw_mbps: 1000}
  - name: app-2
    capacity: {cpu: 2, ram_mb: 2048, disk_mb: 50, bw_mbps: 500}
    delay: 1
    duration: 8
workloads:
  - type: "User Request"
    demand: {cpu: 2, ram_mb: 1024, disk_mb: 10, bw_mbps: 100}
    fluctuation: {cpu: 10, ram: 5, disk: 1.5, bw: 0.5}
    delay: 1
    duration: 5
    priority: 1
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	if sc.Name != "two-containers" {
		t.Errorf("name = %q", sc.Name)
	}
	if len(sc.Nodes) != 1 || len(sc.Containers) != 2 || len(sc.Workloads) != 1 {
		t.Fatalf("unexpected shape: %d nodes, %d containers, %d workloads",
			len(sc.Nodes), len(sc.Containers), len(sc.Workloads))
	}

	w := sc.Workloads[0]
	if w.Demand.CPU != 2 || w.Demand.RAM != 1024 || w.Demand.Disk != 10 || w.Demand.BW != 100 {
		t.Errorf("unexpected demand: %+v", w.Demand)
	}
	if w.Fluctuation.Disk != 1.5 {
		t.Errorf("unexpected fluctuation: %+v", w.Fluctuation)
	}
	if sc.Containers[1].Delay != 1 || sc.Containers[1].Duration != 8 {
		t.Errorf("unexpected container window: %+v", sc.Containers[1])
	}
}

func TestLoadScenario_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_APP_NAME", "env-app")
	sc, err := LoadScenario(writeScenario(t, `
name: env-expansion
containers:
  - name: ${TEST_APP_NAME}
    capacity: {cpu: 1, ram_mb: 512, disk_mb: 10, bw_mbps: 100}
`))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Containers[0].Name != "env-app" {
		t.Errorf("environment variables must expand, got %q", sc.Containers[0].Name)
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no containers", "name: empty\n"},
		{"duplicate container", `
containers:
  - name: app-1
    capacity: {cpu: 1, ram_mb: 512, disk_mb: 10, bw_mbps: 100}
  - name: app-1
    capacity: {cpu: 1, ram_mb: 512, disk_mb: 10, bw_mbps: 100}
`},
		{"zero capacity", `
containers:
  - name: app-1
    capacity: {cpu: 0, ram_mb: 512, disk_mb: 10, bw_mbps: 100}
`},
		{"fluctuation out of range", `
containers:
  - name: app-1
    capacity: {cpu: 1, ram_mb: 512, disk_mb: 10, bw_mbps: 100}
workloads:
  - type: bad
    demand: {cpu: 1, ram_mb: 1, disk_mb: 1, bw_mbps: 1}
    fluctuation: {cpu: 150}
`},
		{"not yaml", "{{{"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadScenario(writeScenario(t, tc.content)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
