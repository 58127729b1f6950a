package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/milanbalazs/contsim/internal/config"
	"github.com/milanbalazs/contsim/internal/logging"
	"github.com/milanbalazs/contsim/internal/report"
	"github.com/milanbalazs/contsim/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a placement simulation from a scenario file",
	Long: `Loads a YAML scenario describing nodes, containers and workloads, places
containers onto nodes and workloads onto containers with the first-fit
reservation scheduler, then steps the simulated clock over the horizon and
reports placements, reservations and observed usage.`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.String("scenario", "", "path to scenario YAML file (required)")
	f.Bool("no-reservations", false, "disable time-aware reservations (classic first-fit)")
	f.Int("horizon", 0, "simulation horizon in ticks (overrides config)")

	_ = simulateCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger()
	log.Debug("scheduler implements the first-fit policy only; other strategies are not available")

	scenarioPath, _ := cmd.Flags().GetString("scenario")
	scenario, err := config.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	if noRes, _ := cmd.Flags().GetBool("no-reservations"); noRes {
		cfg.Simulation.UseReservations = false
	}
	if h, _ := cmd.Flags().GetInt("horizon"); cmd.Flags().Changed("horizon") {
		cfg.Simulation.Horizon = h
	}

	cluster := sim.Build(scenario, cfg.Simulation.Horizon)
	runner := sim.NewRunner(cluster, cfg.Simulation)

	result, err := runner.Run(scenario.Name)
	if err != nil {
		return err
	}

	reporter := report.NewReporter(cfg.Output.Format, os.Stdout)
	meta := report.Meta{
		Scenario:        scenario.Name,
		GeneratedAt:     time.Now(),
		UseReservations: cfg.Simulation.UseReservations,
		Horizon:         cfg.Simulation.Horizon,
		Nodes:           len(cluster.Nodes),
		Containers:      len(cluster.Containers),
		Workloads:       len(cluster.Workloads),
	}
	return reporter.Report(context.Background(), result, meta)
}
