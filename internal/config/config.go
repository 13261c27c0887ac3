// Package config provides configuration file parsing for carbontrack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings. All fields have working defaults;
// a missing config file is not an error.
type Config struct {
	// Threshold is the materiality threshold for reduction suggestions:
	// categories whose potential reduction does not exceed it are omitted.
	Threshold float64 `yaml:"threshold"`

	// Database overrides the default database path when non-empty.
	Database string `yaml:"database"`

	// LogLevel sets the zerolog level for long-running commands.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Threshold: 1.0,
		LogLevel:  "info",
	}
}

// Dir returns the carbontrack config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/carbontrack if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "carbontrack"), nil
}

// Load reads {dir}/config.yaml and applies environment overrides on top.
// A missing file yields the defaults without an error; a malformed file or
// an unparseable environment value is an error.
//
// Precedence (lowest to highest): defaults, config file, environment
// (CARBONTRACK_THRESHOLD, CARBONTRACK_DB, CARBONTRACK_LOG_LEVEL). CLI flags
// are applied by the caller and win over all of these.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CARBONTRACK_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CARBONTRACK_THRESHOLD %q: %w", v, err)
		}
		cfg.Threshold = threshold
	}
	if v := os.Getenv("CARBONTRACK_DB"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("CARBONTRACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
