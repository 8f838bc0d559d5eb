// Package config defines dashboard configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// DataPath is the dashboard CSV snapshot.
	DataPath string `koanf:"data_path" validate:"required"`

	// SessionCapacity bounds the number of live filter sessions.
	SessionCapacity int `koanf:"session_capacity" validate:"min=1"`

	// TopN holds the per-view list limits.
	TopN TopN `koanf:"top_n"`

	// MaxChartBars caps the bars drawn by the chart endpoint.
	MaxChartBars int `koanf:"max_chart_bars" validate:"min=1"`

	// UnawardedPS lists problem statements with no declared winner.
	UnawardedPS []string `koanf:"unawarded_ps"`

	// ExportDir is where sih-report writes rollup CSVs; empty disables it.
	ExportDir string `koanf:"export_dir"`
}

// TopN limits the length of ranked lists.
type TopN struct {
	Themes            int `koanf:"themes" validate:"min=1"`
	States            int `koanf:"states" validate:"min=1"`
	ShareStates       int `koanf:"share_states" validate:"min=1"`
	Institutes        int `koanf:"institutes" validate:"min=1"`
	ProblemStatements int `koanf:"problem_statements" validate:"min=1"`
	Organizations     int `koanf:"organizations" validate:"min=1"`
	Departments       int `koanf:"departments" validate:"min=1"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DataPath:        "data/sih_2025_problem_statements_team_outcomes.csv",
		SessionCapacity: 10_000,
		TopN: TopN{
			Themes:            10,
			States:            10,
			ShareStates:       10,
			Institutes:        15,
			ProblemStatements: 20,
			Organizations:     15,
			Departments:       15,
		},
		MaxChartBars: 25,
		UnawardedPS:  []string{"SIH25056", "SIH25199", "SIH25214"},
	}
}
