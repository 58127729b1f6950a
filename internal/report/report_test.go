package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/milanbalazs/contsim/internal/model"
	"github.com/milanbalazs/contsim/internal/sim"
)

func testResult() *sim.RunResult {
	return &sim.RunResult{
		Scenario:        "report-test",
		Horizon:         10,
		UseReservations: true,
		ContainerPlacements: []sim.Placement{
			{WorkloadID: 0, WorkloadType: "User Request", Unit: "app-1", Tick: 0},
		},
		NodePlacements: []sim.Placement{
			{WorkloadID: 1, WorkloadType: "Container app-1", Unit: "node-1", Tick: 0},
		},
		Forecasts: map[string]map[int]model.Resources{
			"app-1": {
				1: {CPU: 2, RAM: 1024, Disk: 10, BW: 100},
				2: {CPU: 2, RAM: 1024, Disk: 10, BW: 100},
			},
		},
		Usage: []sim.TickUsage{
			{Tick: 1, Unit: "app-1",
				Observed: model.Resources{CPU: 2.1, RAM: 1030, Disk: 10, BW: 100},
				Nominal:  model.Resources{CPU: 2, RAM: 1024, Disk: 10, BW: 100}},
			{Tick: 2, Unit: "app-1",
				Observed: model.Resources{CPU: 1.9, RAM: 1010, Disk: 10, BW: 100},
				Nominal:  model.Resources{CPU: 2, RAM: 1024, Disk: 10, BW: 100}},
		},
	}
}

func testMeta() Meta {
	return Meta{
		Scenario:        "report-test",
		GeneratedAt:     time.Now(),
		UseReservations: true,
		Horizon:         10,
		Nodes:           1,
		Containers:      1,
		Workloads:       1,
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter("json", &buf)

	if err := r.Report(context.Background(), testResult(), testMeta()); err != nil {
		t.Fatal(err)
	}

	var out jsonOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Meta.Scenario != "report-test" {
		t.Errorf("meta scenario = %q", out.Meta.Scenario)
	}
	if len(out.Result.ContainerPlacements) != 1 || out.Result.ContainerPlacements[0].Unit != "app-1" {
		t.Errorf("placements not round-tripped: %+v", out.Result.ContainerPlacements)
	}
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter("table", &buf)

	if err := r.Report(context.Background(), testResult(), testMeta()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"ContSim Placement Report",
		"report-test",
		"app-1",
		"node-1",
		"User Request",
		"Reservation peaks per container",
		"Average observed usage per unit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\n%s", want, out)
		}
	}
}

func TestPeakCommitment(t *testing.T) {
	peak, first, last := peakCommitment(map[int]model.Resources{
		3: {CPU: 1, RAM: 2048, Disk: 5, BW: 300},
		4: {CPU: 2, RAM: 1024, Disk: 10, BW: 100},
		7: {CPU: 0.5, RAM: 512, Disk: 1, BW: 50},
	})

	if first != 3 || last != 7 {
		t.Errorf("tick range = %d..%d, want 3..7", first, last)
	}
	want := model.Resources{CPU: 2, RAM: 2048, Disk: 10, BW: 300}
	if peak != want {
		t.Errorf("peak = %+v, want %+v", peak, want)
	}
}

func TestAverageUsage(t *testing.T) {
	avg := averageUsage([]sim.TickUsage{
		{Unit: "a", Observed: model.Resources{CPU: 1, RAM: 100, Disk: 10, BW: 10}},
		{Unit: "a", Observed: model.Resources{CPU: 3, RAM: 300, Disk: 30, BW: 30}},
		{Unit: "b", Observed: model.Resources{CPU: 2, RAM: 200, Disk: 20, BW: 20}},
	})

	if got := avg["a"]; got.CPU != 2 || got.RAM != 200 || got.Disk != 20 || got.BW != 20 {
		t.Errorf("average for a = %+v", got)
	}
	if got := avg["b"]; got.CPU != 2 || got.RAM != 200 {
		t.Errorf("average for b = %+v", got)
	}
}
