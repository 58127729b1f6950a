package scheduler

import (
	"sort"

	"github.com/milanbalazs/contsim/internal/model"
)

// Forecast is the per-batch reservation ledger: for every execution unit, a
// sparse mapping from integer tick to the resources already promised to
// accepted workloads at that tick. An absent tick means zero commitment;
// callers must never rely on keys being pre-created.
//
// One forecast belongs to exactly one Assign call and is discarded with it.
type Forecast struct {
	enabled bool
	table   map[model.ExecutionUnit]map[int]model.Resources
}

// NewForecast creates an empty forecast for the given units. When enabled is
// false the forecast degrades to instantaneous available-capacity checks and
// Commit becomes a no-op.
func NewForecast(units []model.ExecutionUnit, enabled bool) *Forecast {
	table := make(map[model.ExecutionUnit]map[int]model.Resources, len(units))
	for _, u := range units {
		table[u] = make(map[int]model.Resources)
	}
	return &Forecast{enabled: enabled, table: table}
}

// Feasible reports whether the unit can host the workload over [start, end].
//
// With reservations enabled, every integer tick in the inclusive range
// [int(start), int(end)] must satisfy: recorded commitment + nominal demand
// <= total capacity, on all four dimensions. A workload straddling a tick is
// charged for the whole tick. Short-circuits on the first violation.
//
// With reservations disabled this is a single instantaneous check against
// the unit's currently available capacity, ignoring the window.
func (f *Forecast) Feasible(unit model.ExecutionUnit, w model.WorkloadUnit, start, end float64) bool {
	demand := w.Demand()
	if !f.enabled {
		return demand.FitsIn(unit.Available())
	}

	capacity := unit.Capacity()
	committed := f.table[unit]
	for t := int(start); t <= int(end); t++ {
		if !committed[t].Add(demand).FitsIn(capacity) {
			return false
		}
	}
	return true
}

// Commit adds the workload's nominal demand at every tick in the inclusive
// range [int(start), int(end)]. Must only be called after Feasible returned
// true for the identical unit, workload and window.
func (f *Forecast) Commit(unit model.ExecutionUnit, w model.WorkloadUnit, start, end float64) {
	if !f.enabled {
		return
	}

	demand := w.Demand()
	committed := f.table[unit]
	if committed == nil {
		committed = make(map[int]model.Resources)
		f.table[unit] = committed
	}
	for t := int(start); t <= int(end); t++ {
		committed[t] = committed[t].Add(demand)
	}
}

// At returns the committed resources for a unit at a tick, zero when absent.
func (f *Forecast) At(unit model.ExecutionUnit, tick int) model.Resources {
	return f.table[unit][tick]
}

// Ticks returns the committed ticks for a unit in ascending order.
func (f *Forecast) Ticks(unit model.ExecutionUnit) []int {
	committed := f.table[unit]
	ticks := make([]int, 0, len(committed))
	for t := range committed {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)
	return ticks
}
