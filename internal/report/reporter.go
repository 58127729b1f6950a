package report

import (
	"context"
	"io"
	"time"

	"github.com/milanbalazs/contsim/internal/sim"
)

// Meta carries contextual metadata for a report.
type Meta struct {
	Scenario        string    `json:"scenario"`
	GeneratedAt     time.Time `json:"generated_at"`
	UseReservations bool      `json:"use_reservations"`
	Horizon         int       `json:"horizon"`
	Nodes           int       `json:"nodes"`
	Containers      int       `json:"containers"`
	Workloads       int       `json:"workloads"`
}

// Reporter formats and writes a simulation result to an output destination.
type Reporter interface {
	Report(ctx context.Context, result *sim.RunResult, meta Meta) error
}

// NewReporter creates a reporter for the given format writing to w.
func NewReporter(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}
