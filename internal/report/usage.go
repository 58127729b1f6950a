package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/milanbalazs/contsim/internal/analyzer"
)

// WriteUsage formats a live-analysis result in the given output format.
func WriteUsage(format string, w io.Writer, usage *analyzer.Usage) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(usage); err != nil {
			return fmt.Errorf("encoding usage: %w", err)
		}
		return nil
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Container Usage Analysis: %s\n", usage.Target)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(w, "Window:             %s (%d samples)\n", usage.Window, usage.Samples)
	fmt.Fprintf(w, "Average CPU Usage:  %.2f cores\n", usage.AvgCPUCores)
	fmt.Fprintf(w, "Average RAM Usage:  %.2f MB\n", usage.AvgRAMMB)
	fmt.Fprintf(w, "Average Disk Usage: %.2f MB\n", usage.AvgDiskMB)
	fmt.Fprintf(w, "Total Network RX:   %.2f MB\n", usage.TotalRxMB)
	fmt.Fprintf(w, "Total Network TX:   %.2f MB\n", usage.TotalTxMB)
	return nil
}
