package config

import "time"

// Config is the top-level application configuration for contsim.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
	Simulation SimulationConfig `yaml:"simulation"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // "table" or "json"
}

type SimulationConfig struct {
	// UseReservations toggles the time-aware reservation check. When false
	// the scheduler degrades to classic first-fit on currently available
	// capacity, ignoring delay and duration.
	UseReservations bool `yaml:"use_reservations"`

	// Horizon is the number of ticks the run loop advances through. It also
	// serves as the default duration for containers that declare none.
	Horizon int `yaml:"horizon"`
}

type AnalyzerConfig struct {
	// Backend selects the usage source: "docker" or "prometheus".
	Backend string `yaml:"backend"`

	// Endpoint is the Prometheus base URL; ignored by the docker backend,
	// which connects through the standard DOCKER_HOST environment.
	Endpoint string `yaml:"endpoint"`

	// Window is the total wall-clock monitoring duration, Period the
	// interval between samples.
	Window time.Duration `yaml:"window"`
	Period time.Duration `yaml:"period"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: "table"},
		Simulation: SimulationConfig{
			UseReservations: true,
			Horizon:         20,
		},
		Analyzer: AnalyzerConfig{
			Backend: "docker",
			Window:  20 * time.Second,
			Period:  100 * time.Millisecond,
		},
	}
}
