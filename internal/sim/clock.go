package sim

// Clock is the discrete simulation clock. Ticks are integers starting at 0.
type Clock struct {
	now int
}

// NewClock returns a clock at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current tick.
func (c *Clock) Now() int {
	return c.now
}

// Advance moves the clock one tick forward and returns the new tick.
func (c *Clock) Advance() int {
	c.now++
	return c.now
}
