package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/store"
)

var logDate string

var logCmd = &cobra.Command{
	Use:   "log <category> <quantity>",
	Short: "Record an activity for a day",
	Long: `Record a quantity against an activity category.

The category must exist in the factor catalog (see 'carbontrack categories').
Quantity is measured in the category's unit and must be non-negative.
Without --date the activity is recorded for today.`,
	Example: `  # 24.5 kWh of electricity today
  carbontrack log Electricity 24.5

  # 18 km by petrol car on a specific day
  carbontrack log "Car Petrol" 18 --date 2024-03-01`,
	Args: cobra.ExactArgs(2),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Activity date as YYYY-MM-DD (default: today)")
	RootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	name := args[0]

	quantity, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}
	if quantity < 0 {
		return fmt.Errorf("quantity must be non-negative, got %s", args[1])
	}

	date := time.Now()
	if logDate != "" {
		date, err = time.Parse("2006-01-02", logDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", logDate)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := st.GetCategory(name)
	if err != nil {
		if errors.Is(err, store.ErrUnknownCategory) {
			return fmt.Errorf("unknown category %q: run 'carbontrack categories' to list the catalog", name)
		}
		return err
	}

	_, err = st.InsertActivity(&store.Activity{
		CategoryID: cat.ID,
		Date:       date,
		Quantity:   quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	emissions := quantity * cat.CarbonFactor
	fmt.Printf("Logged %.2f %s of %s on %s (%.2f kg CO2)\n",
		quantity, cat.Unit, cat.Name, date.Format("2006-01-02"), emissions)
	return nil
}
