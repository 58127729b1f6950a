package scheduler

import (
	"errors"
	"fmt"

	"github.com/milanbalazs/contsim/internal/model"
)

// ErrPlacementExhausted means no execution unit in the supplied list can
// accommodate a workload across its full window under the active policy.
var ErrPlacementExhausted = errors.New("no suitable execution unit")

// ErrMalformedWindow means a workload declared a negative delay or duration,
// or a non-finite window. Caller contract violation; rejected before any
// forecast mutation.
var ErrMalformedWindow = errors.New("malformed workload window")

// PlacementError is the batch-fatal failure returned by Assign. It carries
// the unplaceable workload and the time it was scheduled at.
type PlacementError struct {
	Workload model.WorkloadUnit
	Time     float64
	err      error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%v for %q at time %g (workload %d)",
		e.err, e.Workload.WorkloadType(), e.Time, e.Workload.ID())
}

func (e *PlacementError) Unwrap() error { return e.err }
