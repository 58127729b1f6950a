package model

// TickSource provides the current simulation tick. Implemented by the
// simulation clock; execution units read it to timestamp attachments.
type TickSource interface {
	Now() int
}

// ExecutionUnit is anything that offers resource capacity to host work:
// a container hosting workload requests, or a node hosting containers.
//
// Capacity is the unit's declared total. Available is capacity minus
// everything currently running on it; it is owned and mutated by the unit
// (via Reserve/Release on the concrete types), never by the scheduler.
type ExecutionUnit interface {
	Name() string
	Capacity() Resources
	Available() Resources

	// Now reports the unit's notion of current simulation time.
	Now() int

	// Attach records a workload in the unit's per-tick attachment index so
	// the unit can later enumerate what was placed on it at a given tick.
	Attach(tick int, w WorkloadUnit)
}

// WorkloadUnit is a request for resources over a time window: either a raw
// WorkloadRequest being placed onto a container, or a container being placed
// onto a node.
type WorkloadUnit interface {
	// ID is a process-wide unique, monotonically increasing identifier
	// assigned at construction.
	ID() int64

	// WorkloadType is a free-text tag used in logs and failure reports.
	WorkloadType() string

	// Demand is the nominal resource request. Scheduling decisions use this
	// value only; fluctuated samples never influence admission.
	Demand() Resources

	// Window returns the half-open active interval (start, end) in
	// simulation time, where end = start + duration.
	Window() (start, end float64)

	// Priority is reserved for future placement strategies; the first-fit
	// policy ignores it.
	Priority() int

	MarkActive()
	IsActive() bool
}
