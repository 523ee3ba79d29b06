// Package config loads schedscan configuration from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration. cfgFile may be empty, in which case config.yaml
// is searched in the working directory and ~/.schedscan; a missing file is
// not an error. Environment variables use the SCHEDSCAN_ prefix
// (e.g. SCHEDSCAN_SCAN_WORKERS).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Leaf-level defaults so environment overrides bind even when no
	// config file is present.
	defaults := DefaultConfig()
	v.SetDefault("scan.dir", defaults.Scan.Dir)
	v.SetDefault("scan.output", defaults.Scan.Output)
	v.SetDefault("scan.workers", defaults.Scan.Workers)
	v.SetDefault("extract.seed_window_pages", defaults.Extract.SeedWindowPages)
	v.SetDefault("extract.proximity_threshold_chars", defaults.Extract.ProximityThresholdChars)
	v.SetDefault("extract.backward_max_pages", defaults.Extract.BackwardMaxPages)
	v.SetDefault("extract.forward_max_pages", defaults.Extract.ForwardMaxPages)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix("SCHEDSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.schedscan")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes the default configuration to path as yaml. Fails if
// the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("rendering default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
