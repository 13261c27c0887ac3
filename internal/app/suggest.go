package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/report"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

var (
	suggestThreshold float64
	suggestJSON      bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show reduction suggestions ranked by potential savings",
	Long: `Rank activity categories by potential emission reduction.

For every category with at least one logged activity, the potential reduction
is the average logged quantity times the category's carbon factor. Categories
whose potential is at or below the materiality threshold are filtered out.
The remainder are listed largest first, each with a concrete suggestion.

The threshold defaults to 1.0 kg CO2 and can be set per run with --threshold,
per environment with CARBONTRACK_THRESHOLD, or in the config file.`,
	Example: `  # Default threshold (1.0 kg CO2)
  carbontrack suggest

  # Surface only the big levers
  carbontrack suggest --threshold 5

  # Machine-readable output
  carbontrack suggest --json`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().Float64Var(&suggestThreshold, "threshold", analyzer.DefaultThreshold, "Materiality threshold in kg CO2")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Emit the report as JSON")
	RootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	threshold := suggestThreshold
	if !cmd.Flags().Changed("threshold") {
		threshold = loadConfig().Threshold
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opps, err := analyzer.New(st).ReductionOpportunities(threshold)
	if err != nil {
		if errors.Is(err, store.ErrOrphanedActivities) {
			return fmt.Errorf("%w: the database was modified outside carbontrack; "+
				"remove the orphaned activity rows before analyzing", err)
		}
		return err
	}

	if suggestJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(opps)
	}

	fmt.Print(report.RenderOpportunityTable(opps))
	return nil
}
