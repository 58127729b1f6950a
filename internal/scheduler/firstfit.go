package scheduler

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milanbalazs/contsim/internal/logging"
	"github.com/milanbalazs/contsim/internal/model"
)

// Balancer places a batch of workload units onto execution units using the
// first-fit policy, optionally reservation-aware.
//
// Iteration order is the caller's order on both lists; first-fit is
// order-dependent by design and the run is strictly single-threaded.
// One Assign call owns one forecast; construct a fresh balancer per batch
// unless reservations should deliberately persist across calls.
type Balancer struct {
	workloads       []model.WorkloadUnit
	units           []model.ExecutionUnit
	useReservations bool

	forecast *Forecast
	log      *logrus.Logger
}

// NewBalancer creates a first-fit balancer over the given ordered lists.
func NewBalancer(workloads []model.WorkloadUnit, units []model.ExecutionUnit, useReservations bool) *Balancer {
	return &Balancer{
		workloads:       workloads,
		units:           units,
		useReservations: useReservations,
		log:             logging.GetLogger(),
	}
}

// NewContainerBalancer places workload requests onto containers.
func NewContainerBalancer(reqs []*model.WorkloadRequest, containers []*model.Container, useReservations bool) *Balancer {
	workloads := make([]model.WorkloadUnit, len(reqs))
	for i, r := range reqs {
		workloads[i] = r
	}
	units := make([]model.ExecutionUnit, len(containers))
	for i, c := range containers {
		units[i] = c
	}
	return NewBalancer(workloads, units, useReservations)
}

// NewNodeBalancer places containers, acting as workload units, onto nodes.
func NewNodeBalancer(containers []*model.Container, nodes []*model.Node, useReservations bool) *Balancer {
	workloads := make([]model.WorkloadUnit, len(containers))
	for i, c := range containers {
		workloads[i] = c
	}
	units := make([]model.ExecutionUnit, len(nodes))
	for i, n := range nodes {
		units[i] = n
	}
	return NewBalancer(workloads, units, useReservations)
}

// Assign runs the batch to completion or to the first rejection.
//
// Each workload is assigned to the first execution unit feasible across its
// whole window; on success the reservation is committed, the workload marked
// active and recorded in the unit's attachment index at the unit's current
// tick. An unplaceable workload fails the whole batch immediately; workloads
// after it are not attempted and nothing is committed for them.
func (b *Balancer) Assign() error {
	for _, w := range b.workloads {
		if err := validateWindow(w); err != nil {
			start, _ := w.Window()
			return &PlacementError{Workload: w, Time: start, err: err}
		}
	}

	b.forecast = NewForecast(b.units, b.useReservations)

	for _, w := range b.workloads {
		start, end := w.Window()
		assigned := false

		for _, unit := range b.units {
			if !b.forecast.Feasible(unit, w, start, end) {
				continue
			}

			b.forecast.Commit(unit, w, start, end)
			w.MarkActive()
			unit.Attach(unit.Now(), w)

			b.log.WithFields(logrus.Fields{
				"workload": w.ID(),
				"type":     w.WorkloadType(),
				"unit":     unit.Name(),
				"tick":     unit.Now(),
			}).Info("workload assigned")

			assigned = true
			break
		}

		if !assigned {
			return &PlacementError{Workload: w, Time: start, err: ErrPlacementExhausted}
		}
	}

	return nil
}

// Forecast returns the reservation ledger built by the last Assign call.
// Nil before Assign has run.
func (b *Balancer) Forecast() *Forecast {
	return b.forecast
}

// validateWindow rejects windows the reservation table cannot represent:
// negative delay, negative duration, or non-finite bounds. A zero duration
// is accepted and collapses to a single-instant reservation at int(delay).
func validateWindow(w model.WorkloadUnit) error {
	start, end := w.Window()
	switch {
	case math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0):
		return fmt.Errorf("%w: non-finite bounds (%g, %g)", ErrMalformedWindow, start, end)
	case start < 0:
		return fmt.Errorf("%w: negative delay %g", ErrMalformedWindow, start)
	case end < start:
		return fmt.Errorf("%w: negative duration %g", ErrMalformedWindow, end-start)
	}
	return nil
}
