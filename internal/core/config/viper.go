package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	def := DefaultConfig()
	v.SetDefault("checker.rules_file", def.Checker.RulesFile)
	v.SetDefault("checker.workers", def.Checker.Workers)
	v.SetDefault("checker.max_batch_size", def.Checker.MaxBatchSize)
	v.SetDefault("checker.metrics_file", def.Checker.MetricsFile)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	// Bind environment variables with QM_ prefix
	v.SetEnvPrefix("QM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Rule sets live in their own file, referenced by checker.rules_file
	if err := validateNoInlineRules(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		Checker: CheckerConfig{
			RulesFile:    v.GetString("checker.rules_file"),
			Workers:      v.GetInt("checker.workers"),
			MaxBatchSize: v.GetInt("checker.max_batch_size"),
			MetricsFile:  v.GetString("checker.metrics_file"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks positive worker count and batch size, and the log settings.
func validateConfig(cfg *Config) error {
	if cfg.Checker.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Checker.Workers)
	}
	if cfg.Checker.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be positive, got %d", cfg.Checker.MaxBatchSize)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be json or text, got %q", cfg.Log.Format)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}
	return nil
}

func validateNoInlineRules(v *viper.Viper) error {
	if v.IsSet("rules") || v.IsSet("checker.rules") {
		return fmt.Errorf("rule definitions not allowed in config files (use checker.rules_file)")
	}
	return nil
}
