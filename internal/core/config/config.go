// Package config provides configuration management for qualimarc commands.
package config

// CheckerConfig holds configuration for the batch checker.
type CheckerConfig struct {
	RulesFile    string
	Workers      int
	MaxBatchSize int
	MetricsFile  string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Config is the complete qualimarc configuration.
type Config struct {
	Checker CheckerConfig
	Log     LogConfig
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Checker: CheckerConfig{
			RulesFile:    "",
			Workers:      4,
			MaxBatchSize: 100000,
			MetricsFile:  "",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
