package model

import (
	"fmt"
	"sync/atomic"
)

// workloadID is the process-wide identifier allocator. It only ever counts
// up; identifiers stay unique even when scenarios are built concurrently.
var workloadID atomic.Int64

func nextWorkloadID() int64 {
	return workloadID.Add(1) - 1
}

// FluctuationPercents holds the per-dimension variability band (0-100)
// applied when sampling observed usage around a nominal demand.
type FluctuationPercents struct {
	CPU  float64 `json:"cpu" yaml:"cpu"`
	RAM  float64 `json:"ram" yaml:"ram"`
	Disk float64 `json:"disk" yaml:"disk"`
	BW   float64 `json:"bw" yaml:"bw"`
}

// WorkloadRequest is a task that consumes resources on a container for a
// bounded time window. It persists for the whole run as a scheduling record;
// the engine only ever flips its active flag.
type WorkloadRequest struct {
	id int64

	// Nominal demand per dimension.
	Nominal Resources

	// Fluctuation bands for observed-usage sampling.
	Fluctuation FluctuationPercents

	// Delay is the simulation time at which the workload becomes active,
	// relative to scheduling time. Duration is the length of the window.
	Delay    float64
	Duration float64

	// Prio is reserved for future strategies.
	Prio int

	// Type is a free-text tag, e.g. "User Request".
	Type string

	active bool
}

// NewWorkloadRequest creates a workload request and assigns its identifier.
func NewWorkloadRequest(nominal Resources, fluct FluctuationPercents, delay, duration float64, prio int, workloadType string) *WorkloadRequest {
	return &WorkloadRequest{
		id:          nextWorkloadID(),
		Nominal:     nominal,
		Fluctuation: fluct,
		Delay:       delay,
		Duration:    duration,
		Prio:        prio,
		Type:        workloadType,
	}
}

func (w *WorkloadRequest) ID() int64            { return w.id }
func (w *WorkloadRequest) WorkloadType() string { return w.Type }
func (w *WorkloadRequest) Demand() Resources    { return w.Nominal }
func (w *WorkloadRequest) Priority() int        { return w.Prio }
func (w *WorkloadRequest) MarkActive()          { w.active = true }
func (w *WorkloadRequest) IsActive() bool       { return w.active }

// Window returns the half-open active interval (Delay, Delay+Duration).
func (w *WorkloadRequest) Window() (float64, float64) {
	return w.Delay, w.Delay + w.Duration
}

// SampledUsage draws an instantaneous observed usage for every dimension,
// bounded by the configured fluctuation bands around the nominal demand.
// Reporting only; admission always reasons about Nominal.
func (w *WorkloadRequest) SampledUsage() Resources {
	return Resources{
		CPU:  FluctuatedFloat(w.Nominal.CPU, w.Fluctuation.CPU),
		RAM:  FluctuatedInt(w.Nominal.RAM, w.Fluctuation.RAM),
		Disk: FluctuatedInt(w.Nominal.Disk, w.Fluctuation.Disk),
		BW:   FluctuatedInt(w.Nominal.BW, w.Fluctuation.BW),
	}
}

func (w *WorkloadRequest) String() string {
	return fmt.Sprintf("WorkloadRequest(id=%d, type=%s, cpu=%g, ram=%d, disk=%d, bw=%d, delay=%g, duration=%g)",
		w.id, w.Type, w.Nominal.CPU, w.Nominal.RAM, w.Nominal.Disk, w.Nominal.BW, w.Delay, w.Duration)
}
