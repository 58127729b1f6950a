package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/milanbalazs/contsim/internal/analyzer"
	"github.com/milanbalazs/contsim/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Measure a live container's resource usage over a time window",
	Long: `Samples CPU, RAM, disk and network usage of a running container, either
from the local Docker daemon or from a Prometheus endpoint scraping
cAdvisor, and reports averages over the window. Useful for calibrating
the nominal demand values of a simulation scenario.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("target", "", "container ID or name (required)")
	f.String("backend", "", "usage source: docker or prometheus")
	f.String("endpoint", "", "Prometheus base URL (prometheus backend)")
	f.Duration("window", 0, "monitoring window (overrides config)")
	f.Duration("period", 0, "sampling interval (overrides config)")

	_ = analyzeCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Analyzer.Backend = backend
	}
	if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
		cfg.Analyzer.Endpoint = endpoint
	}
	if w, _ := cmd.Flags().GetDuration("window"); cmd.Flags().Changed("window") {
		cfg.Analyzer.Window = w
	}
	if p, _ := cmd.Flags().GetDuration("period"); cmd.Flags().Changed("period") {
		cfg.Analyzer.Period = p
	}

	a, err := analyzer.New(cfg.Analyzer)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Analyzer.Window+30*time.Second)
	defer cancel()

	usage, err := a.Analyze(ctx, target)
	if err != nil {
		return err
	}

	return report.WriteUsage(cfg.Output.Format, os.Stdout, usage)
}
