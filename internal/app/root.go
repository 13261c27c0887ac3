package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/config"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

var (
	dbPath   string
	logLevel string

	// RootCmd is the root command for carbontrack
	RootCmd = &cobra.Command{
		Use:   "carbontrack",
		Short: "Personal carbon-footprint tracking and reduction suggestions",
		Long: `carbontrack keeps a local SQLite journal of daily activities (electricity,
travel, food, waste) and turns it into emission estimates and reduction
suggestions.

Each activity category carries a fixed carbon factor (kg CO2 per unit).
Suggestions are ranked by potential reduction: the average logged quantity
of a category times its factor. Categories below the materiality threshold
(default 1.0 kg CO2) are not surfaced.

Quick Start:
  1. carbontrack init
  2. carbontrack log Electricity 24.5
  3. carbontrack suggest

Examples:
  # Create the database and load the default factor catalog
  carbontrack init

  # Record 24.5 kWh of electricity for today
  carbontrack log Electricity 24.5

  # Record a past activity
  carbontrack log "Car Petrol" 18 --date 2024-03-01

  # Show reduction suggestions
  carbontrack suggest

  # Daily emissions over the last month
  carbontrack timeline --days 30

  # Export the dataset for a dashboard, refreshing on change
  carbontrack export --format json --out carbon.json --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := resolveDBPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("carbontrack: personal carbon-footprint analytics")
				fmt.Println()
				fmt.Println("Run 'carbontrack init' to get started.")
				fmt.Println("Run 'carbontrack --help' for the full reference.")
			} else {
				fmt.Println("carbontrack: personal carbon-footprint analytics")
				fmt.Println()
				fmt.Println("Tip: Run 'carbontrack suggest' to view reduction suggestions.")
				fmt.Println("     Run 'carbontrack --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.carbontrack/carbontrack.db)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level for long-running commands (default: info)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig reads the config file, falling back to defaults on error so a
// broken config never takes the whole CLI down.
func loadConfig() *config.Config {
	dir, err := config.Dir()
	if err != nil {
		return config.Default()
	}

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.Default()
	}
	return cfg
}

// resolveDBPath returns the database path: --db flag, then config/env, then
// the default under the user's home directory.
func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	if cfg := loadConfig(); cfg.Database != "" {
		return cfg.Database, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	carbontrackDir := filepath.Join(home, ".carbontrack")
	if err := os.MkdirAll(carbontrackDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create carbontrack directory: %w", err)
	}

	return filepath.Join(carbontrackDir, "carbontrack.db"), nil
}

// openStore opens the database at the resolved path.
func openStore() (*store.Store, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return st, nil
}

// resolveLogLevel returns the log level: --log-level flag, then config/env.
func resolveLogLevel() string {
	if logLevel != "" {
		return logLevel
	}
	return loadConfig().LogLevel
}
