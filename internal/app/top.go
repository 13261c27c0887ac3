package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/report"
)

var topLimit int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most carbon-intensive categories",
	Long: `Rank categories by total recorded emissions, largest first.

Unlike 'suggest', this view applies no threshold and ranks by the total
across all logged activity, not the per-entry average.`,
	Example: `  # Five heaviest categories (default)
  carbontrack top

  # The single biggest source
  carbontrack top --limit 1`,
	RunE: runTop,
}

func init() {
	topCmd.Flags().IntVar(&topLimit, "limit", 5, "Number of categories to show")
	RootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	usages, err := analyzer.New(st).TopActivities(topLimit)
	if err != nil {
		return err
	}

	fmt.Print(report.RenderTopTable(usages))
	return nil
}
