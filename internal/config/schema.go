package config

import "schedscan/internal/schedule"

// Config holds schedscan configuration.
// Loaded from ./config.yaml or ~/.schedscan/config.yaml.
type Config struct {
	Scan    ScanCfg    `mapstructure:"scan" yaml:"scan"`
	Extract ExtractCfg `mapstructure:"extract" yaml:"extract"`
	Log     LogCfg     `mapstructure:"log" yaml:"log"`
}

// ScanCfg configures the batch input and output.
type ScanCfg struct {
	// Dir is the directory of handbook PDFs.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Output is the path of the xlsx report.
	Output string `mapstructure:"output" yaml:"output"`
	// Workers bounds parallel document extraction.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// ExtractCfg tunes the detection engine. Zero values fall back to the
// engine defaults.
type ExtractCfg struct {
	SeedWindowPages         int `mapstructure:"seed_window_pages" yaml:"seed_window_pages"`
	ProximityThresholdChars int `mapstructure:"proximity_threshold_chars" yaml:"proximity_threshold_chars"`
	BackwardMaxPages        int `mapstructure:"backward_max_pages" yaml:"backward_max_pages"`
	ForwardMaxPages         int `mapstructure:"forward_max_pages" yaml:"forward_max_pages"`
}

// LogCfg configures logging.
type LogCfg struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	opts := schedule.DefaultOptions()
	return &Config{
		Scan: ScanCfg{
			Dir:     "handbooks",
			Output:  "schedules.xlsx",
			Workers: 4,
		},
		Extract: ExtractCfg{
			SeedWindowPages:         opts.SeedWindowPages,
			ProximityThresholdChars: opts.ProximityThresholdChars,
			BackwardMaxPages:        opts.BackwardMaxPages,
			ForwardMaxPages:         opts.ForwardMaxPages,
		},
		Log: LogCfg{Level: "info"},
	}
}

// Options converts the extract section into engine options, filling any
// zero field from the defaults so a partial config stays usable.
func (c *Config) Options() schedule.Options {
	opts := schedule.DefaultOptions()
	if c.Extract.SeedWindowPages > 0 {
		opts.SeedWindowPages = c.Extract.SeedWindowPages
	}
	if c.Extract.ProximityThresholdChars > 0 {
		opts.ProximityThresholdChars = c.Extract.ProximityThresholdChars
	}
	if c.Extract.BackwardMaxPages > 0 {
		opts.BackwardMaxPages = c.Extract.BackwardMaxPages
	}
	if c.Extract.ForwardMaxPages > 0 {
		opts.ForwardMaxPages = c.Extract.ForwardMaxPages
	}
	return opts
}
