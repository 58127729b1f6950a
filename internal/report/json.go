package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/milanbalazs/contsim/internal/sim"
)

// JSONReporter outputs the run result as indented JSON.
type JSONReporter struct {
	w io.Writer
}

type jsonOutput struct {
	Meta   Meta           `json:"meta"`
	Result *sim.RunResult `json:"result"`
}

func (r *JSONReporter) Report(ctx context.Context, result *sim.RunResult, meta Meta) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonOutput{Meta: meta, Result: result}); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
