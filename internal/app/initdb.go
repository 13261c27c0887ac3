package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/report"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

var initNoCatalog bool

// defaultCatalog is the built-in emission-factor catalog. Factors are
// kg CO2 per unit; sources are UK DEFRA/BEIS conversion factors. Recycling
// carries a negative factor because it offsets landfill emissions.
var defaultCatalog = []store.Category{
	{Name: "Electricity", Unit: "kWh", CarbonFactor: 0.233},
	{Name: "Natural Gas", Unit: "kWh", CarbonFactor: 0.184},
	{Name: "Water Usage", Unit: "L", CarbonFactor: 0.0003},
	{Name: "Car Petrol", Unit: "km", CarbonFactor: 0.171},
	{Name: "Car Diesel", Unit: "km", CarbonFactor: 0.164},
	{Name: "Public Transport", Unit: "km", CarbonFactor: 0.041},
	{Name: "Flight Domestic", Unit: "km", CarbonFactor: 0.255},
	{Name: "Flight International", Unit: "km", CarbonFactor: 0.195},
	{Name: "Food Meat", Unit: "kg", CarbonFactor: 7.26},
	{Name: "Food Vegetables", Unit: "kg", CarbonFactor: 0.43},
	{Name: "Waste Recycling", Unit: "kg", CarbonFactor: -0.1},
	{Name: "Waste Landfill", Unit: "kg", CarbonFactor: 0.8},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the activity database and load the default factor catalog",
	Long: `Create the SQLite database and load the default emission-factor catalog.

The catalog covers household energy, travel, food and waste categories with
factors in kg CO2 per unit. Running init again is safe: the schema uses
CREATE TABLE IF NOT EXISTS and existing factors are never overwritten.

Use --no-catalog to create an empty schema and load your own categories
with 'carbontrack log' rejecting anything you have not defined.`,
	Example: `  # Create the database with the default catalog
  carbontrack init

  # Create an empty schema only
  carbontrack init --no-catalog

  # Use a custom database location
  carbontrack init --db /tmp/carbon.db`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initNoCatalog, "no-catalog", false, "Skip loading the default emission-factor catalog")
	RootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	loaded := 0
	if !initNoCatalog {
		for i := range defaultCatalog {
			cat := defaultCatalog[i]
			if _, err := st.UpsertCategory(&cat); err != nil {
				return fmt.Errorf("failed to load catalog entry %s: %w", cat.Name, err)
			}
			loaded++
		}
	}

	path, _ := resolveDBPath()
	fmt.Printf("%s Database initialized at %s\n", report.Green("✓"), path)
	if loaded > 0 {
		fmt.Printf("%s Loaded %d emission-factor categories\n", report.Green("✓"), loaded)
		fmt.Println()
		fmt.Println("Next: carbontrack log Electricity 24.5")
	} else {
		fmt.Println()
		fmt.Println("Next: define categories and start logging activities.")
	}
	return nil
}
