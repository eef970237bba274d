// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Default admin code. A documented weak fallback for classroom use, not a
// security boundary; override it with RACEBOARD_ADMIN_CODE.
const DefaultAdminCode = "letmein"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile is the flat CSV submission store shared across processes.
	DataFile string `koanf:"data_file"`

	// LockTimeoutMS bounds the wait for the cross-process store lock.
	LockTimeoutMS int `koanf:"lock_timeout_ms"`

	// AdminCode gates the whole-ledger reset.
	AdminCode string `koanf:"admin_code"`

	// ScenariosFile is the scenario definition document.
	ScenariosFile string `koanf:"scenarios_file"`

	// MaxRound caps the round number accepted on submissions.
	MaxRound int `koanf:"max_round"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DataFile:      "submissions_v2.csv",
		LockTimeoutMS: 5000,
		AdminCode:     DefaultAdminCode,
		ScenariosFile: "scenarios.json",
		MaxRound:      50,
	}
}
