package scheduler

import (
	"testing"

	"github.com/milanbalazs/contsim/internal/model"
)

type fakeClock int

func (f fakeClock) Now() int { return int(f) }

func makeContainer(name string, capacity model.Resources) *model.Container {
	return model.NewContainer(fakeClock(0), name, capacity)
}

func makeWorkload(demand model.Resources, delay, duration float64, wtype string) *model.WorkloadRequest {
	return model.NewWorkloadRequest(demand, model.FluctuationPercents{}, delay, duration, 0, wtype)
}

func unitsOf(cs ...*model.Container) []model.ExecutionUnit {
	units := make([]model.ExecutionUnit, len(cs))
	for i, c := range cs {
		units[i] = c
	}
	return units
}

func TestForecast_AbsentTickIsZero(t *testing.T) {
	c := makeContainer("app-1", model.Resources{CPU: 4, RAM: 4096, Disk: 100, BW: 1000})
	f := NewForecast(unitsOf(c), true)

	if got := f.At(c, 5); !got.IsZero() {
		t.Errorf("uncommitted tick must read as zero, got %+v", got)
	}
	if got := f.Ticks(c); len(got) != 0 {
		t.Errorf("fresh forecast must have no committed ticks, got %v", got)
	}
}

func TestForecast_CommitAccumulates(t *testing.T) {
	c := makeContainer("app-1", model.Resources{CPU: 4, RAM: 4096, Disk: 100, BW: 1000})
	f := NewForecast(unitsOf(c), true)

	w1 := makeWorkload(model.Resources{CPU: 1, RAM: 512, Disk: 5, BW: 50}, 0, 3, "w1")
	w2 := makeWorkload(model.Resources{CPU: 2, RAM: 1024, Disk: 10, BW: 100}, 2, 2, "w2")

	f.Commit(c, w1, 0, 3)
	f.Commit(c, w2, 2, 4)

	// Tick 2 is in both windows.
	want := model.Resources{CPU: 3, RAM: 1536, Disk: 15, BW: 150}
	if got := f.At(c, 2); got != want {
		t.Errorf("tick 2 commitment = %+v, want %+v", got, want)
	}

	// Tick 4 only holds w2.
	if got := f.At(c, 4); got != w2.Demand() {
		t.Errorf("tick 4 commitment = %+v, want %+v", got, w2.Demand())
	}

	wantTicks := []int{0, 1, 2, 3, 4}
	got := f.Ticks(c)
	if len(got) != len(wantTicks) {
		t.Fatalf("committed ticks = %v, want %v", got, wantTicks)
	}
	for i := range wantTicks {
		if got[i] != wantTicks[i] {
			t.Fatalf("committed ticks = %v, want %v", got, wantTicks)
		}
	}
}

func TestForecast_FeasibleAgainstCapacity(t *testing.T) {
	c := makeContainer("app-1", model.Resources{CPU: 4, RAM: 4096, Disk: 100, BW: 1000})
	f := NewForecast(unitsOf(c), true)

	half := makeWorkload(model.Resources{CPU: 2, RAM: 2048, Disk: 50, BW: 500}, 0, 5, "half")
	if !f.Feasible(c, half, 0, 5) {
		t.Fatal("half the capacity must be feasible")
	}
	f.Commit(c, half, 0, 5)

	// A second identical workload exactly fills the unit.
	if !f.Feasible(c, half, 0, 5) {
		t.Error("exact fill must be feasible")
	}

	over := makeWorkload(model.Resources{CPU: 2.1, RAM: 1, Disk: 1, BW: 1}, 0, 5, "over")
	if f.Feasible(c, over, 0, 5) {
		t.Error("exceeding capacity at a committed tick must be infeasible")
	}
}

func TestForecast_SingleTickViolationFailsWholeWindow(t *testing.T) {
	c := makeContainer("app-1", model.Resources{CPU: 4, RAM: 4096, Disk: 100, BW: 1000})
	f := NewForecast(unitsOf(c), true)

	// Occupy only tick 7 heavily.
	blocker := makeWorkload(model.Resources{CPU: 3, RAM: 1, Disk: 1, BW: 1}, 7, 0, "blocker")
	f.Commit(c, blocker, 7, 7)

	// A long window crossing tick 7 with demand that fits everywhere else.
	w := makeWorkload(model.Resources{CPU: 2, RAM: 1, Disk: 1, BW: 1}, 0, 10, "w")
	if f.Feasible(c, w, 0, 10) {
		t.Error("violation at a single tick must make the whole window infeasible")
	}
	if !f.Feasible(c, w, 0, 6) {
		t.Error("the same demand must be feasible on a window avoiding the busy tick")
	}
}

func TestForecast_StraddlingChargedWholeTicks(t *testing.T) {
	c := makeContainer("app-1", model.Resources{CPU: 4, RAM: 4096, Disk: 100, BW: 1000})
	f := NewForecast(unitsOf(c), true)

	// Window (1.5, 2.5) touches ticks 1 and 2 after truncation.
	w := makeWorkload(model.Resources{CPU: 1, RAM: 1, Disk: 1, BW: 1}, 1.5, 1, "w")
	f.Commit(c, w, 1.5, 2.5)

	if f.At(c, 1).IsZero() || f.At(c, 2).IsZero() {
		t.Error("straddled ticks must be charged in full")
	}
	if !f.At(c, 0).IsZero() || !f.At(c, 3).IsZero() {
		t.Error("ticks outside the truncated range must stay uncommitted")
	}
}

func TestForecast_DisabledUsesAvailableCapacity(t *testing.T) {
	c := makeContainer("app-1", model.Resources{CPU: 4, RAM: 4096, Disk: 100, BW: 1000})
	// Something is already running: only one core left.
	c.Reserve(model.Resources{CPU: 3, RAM: 2048, Disk: 50, BW: 500})

	f := NewForecast(unitsOf(c), false)

	fits := makeWorkload(model.Resources{CPU: 1, RAM: 1024, Disk: 10, BW: 100}, 0, 5, "fits")
	if !f.Feasible(c, fits, 0, 5) {
		t.Error("demand within available capacity must be feasible")
	}

	tooBig := makeWorkload(model.Resources{CPU: 2, RAM: 1024, Disk: 10, BW: 100}, 0, 5, "too-big")
	if f.Feasible(c, tooBig, 0, 5) {
		t.Error("demand exceeding available capacity must be infeasible even under total capacity")
	}

	// Commit is a no-op when tracking is disabled.
	f.Commit(c, fits, 0, 5)
	if got := f.Ticks(c); len(got) != 0 {
		t.Errorf("disabled forecast must stay empty, got ticks %v", got)
	}
}
