package model

// Container is a dual-role entity: an execution unit hosting workload
// requests, and a workload unit when containers are placed onto nodes.
// Its demand as a workload is its declared capacity.
type Container struct {
	id        int64
	name      string
	capacity  Resources
	available Resources
	clock     TickSource

	// Delay and Duration describe the container's own active window when it
	// is placed onto a node as a workload.
	Delay    float64
	Duration float64

	// Fluctuation bands for observed-usage sampling of the container itself.
	Fluctuation FluctuationPercents

	attached map[int][]WorkloadUnit
	active   bool
}

// NewContainer creates a container with the given capacity, fully available.
func NewContainer(clock TickSource, name string, capacity Resources) *Container {
	return &Container{
		id:        nextWorkloadID(),
		name:      name,
		capacity:  capacity,
		available: capacity,
		clock:     clock,
		attached:  make(map[int][]WorkloadUnit),
	}
}

func (c *Container) Name() string         { return c.name }
func (c *Container) Capacity() Resources  { return c.capacity }
func (c *Container) Available() Resources { return c.available }

// Now reports the current simulation tick, or 0 before any clock is wired.
func (c *Container) Now() int {
	if c.clock == nil {
		return 0
	}
	return c.clock.Now()
}

// Attach records a workload in the per-tick attachment index.
func (c *Container) Attach(tick int, w WorkloadUnit) {
	c.attached[tick] = append(c.attached[tick], w)
}

// AttachedAt returns the workloads attached at the given tick.
func (c *Container) AttachedAt(tick int) []WorkloadUnit {
	return c.attached[tick]
}

// Attached returns the full per-tick attachment index.
func (c *Container) Attached() map[int][]WorkloadUnit {
	return c.attached
}

// Reserve debits available capacity when an attached workload starts.
// Called by the simulation stepper, never by the scheduler.
func (c *Container) Reserve(r Resources) {
	c.available = c.available.Sub(r)
}

// Release credits capacity back when a workload's window ends.
func (c *Container) Release(r Resources) {
	c.available = c.available.Add(r)
}

// Workload-unit role: the container asks a node for its full declared size.

func (c *Container) ID() int64            { return c.id }
func (c *Container) WorkloadType() string { return "Container " + c.name }
func (c *Container) Demand() Resources    { return c.capacity }
func (c *Container) Priority() int        { return 0 }
func (c *Container) MarkActive()          { c.active = true }
func (c *Container) IsActive() bool       { return c.active }

func (c *Container) Window() (float64, float64) {
	return c.Delay, c.Delay + c.Duration
}

// SampledUsage draws an observed usage for the container as a whole.
func (c *Container) SampledUsage() Resources {
	return Resources{
		CPU:  FluctuatedFloat(c.capacity.CPU, c.Fluctuation.CPU),
		RAM:  FluctuatedInt(c.capacity.RAM, c.Fluctuation.RAM),
		Disk: FluctuatedInt(c.capacity.Disk, c.Fluctuation.Disk),
		BW:   FluctuatedInt(c.capacity.BW, c.Fluctuation.BW),
	}
}
