// Package config loads CLI defaults for the palettize command from a JSON
// file at ~/.config/palettize/config.json, following the same
// load-then-default-then-validate shape as other config loaders in this
// corpus. Unlike a server's required configuration, every field here is
// optional: a missing file, or a missing field within one, just means the
// built-in default applies.
//
// Example config file:
//
//	{
//	  "algorithm": "scatter",
//	  "threshold": 150,
//	  "limit": 256,
//	  "dither_strength": 1.0,
//	  "log_level": "info",
//	  "log_file": ""
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the palettize CLI's tunable defaults.
type Config struct {
	// Algorithm names the default dither kernel: one of "none",
	// "gradient-noise", "pattern", "chaotic-noise", "diffusion",
	// "blue-noise", "scatter". Defaults to "scatter".
	Algorithm string `json:"algorithm"`

	// Threshold is the default perceptual threshold passed to analyze.
	// Defaults to 150.
	Threshold int `json:"threshold"`

	// Limit is the default palette size cap. Defaults to 256.
	Limit int `json:"limit"`

	// DitherStrength is the default raw strength passed to
	// SetDitherStrength. Defaults to 1.0 (halved internally to 0.5).
	DitherStrength float64 `json:"dither_strength"`

	// LogLevel is the mtlog minimum level: "debug", "info", "warn", or
	// "error". Defaults to "info".
	LogLevel string `json:"log_level"`

	// LogFile is read from the config file but not used: the palettize
	// command always logs to the console only.
	LogFile string `json:"log_file"`
}

// Defaults applied for any field left unset by the config file, or when
// no config file exists at all.
const (
	DefaultAlgorithm      = "scatter"
	DefaultThreshold      = 150
	DefaultLimit          = 256
	DefaultDitherStrength = 1.0
	DefaultLogLevel       = "info"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validAlgorithms = map[string]bool{
	"none": true, "gradient-noise": true, "pattern": true, "chaotic-noise": true,
	"diffusion": true, "blue-noise": true, "scatter": true,
}

// Load reads the config file at the default path, applies defaults to any
// unset field, validates the result, and returns it. A missing config file
// is not an error: Load returns the all-defaults Config instead.
func Load() (*Config, error) {
	cfg := &Config{
		Algorithm:      DefaultAlgorithm,
		Threshold:      DefaultThreshold,
		Limit:          DefaultLimit,
		DitherStrength: DefaultDitherStrength,
		LogLevel:       DefaultLogLevel,
	}

	data, err := os.ReadFile(filePath())
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", filePath(), err)
	}

	var fromFile Config
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", filePath(), err)
	}
	cfg.applyOverrides(&fromFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid %s: %w", filePath(), err)
	}
	return cfg, nil
}

func (c *Config) applyOverrides(o *Config) {
	if o.Algorithm != "" {
		c.Algorithm = o.Algorithm
	}
	if o.Threshold != 0 {
		c.Threshold = o.Threshold
	}
	if o.Limit != 0 {
		c.Limit = o.Limit
	}
	if o.DitherStrength != 0 {
		c.DitherStrength = o.DitherStrength
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
}

// Validate reports whether the configuration holds recognized values.
func (c *Config) Validate() error {
	if !validAlgorithms[c.Algorithm] {
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if c.Limit < 0 || c.Limit > 256 {
		return fmt.Errorf("limit must be in [0, 256], got %d", c.Limit)
	}
	if c.DitherStrength < 0 {
		return fmt.Errorf("dither_strength must be >= 0, got %v", c.DitherStrength)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

func filePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "palettize", "config.json")
}
