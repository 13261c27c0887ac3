package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/report"
)

var trendPeriod int

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare recent emissions against the previous period",
	Long: `Compare average daily emissions over the last period against the
period before it.

With --period 30 the last 30 days are compared against the 30 days before
that. The report shows both averages and the percentage change. At least one
logged day in the recent period is required.`,
	Example: `  # Month over month (default)
  carbontrack trend

  # Week over week
  carbontrack trend --period 7`,
	RunE: runTrend,
}

func init() {
	trendCmd.Flags().IntVar(&trendPeriod, "period", 30, "Comparison period in days")
	RootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	trend, err := analyzer.New(st).TrendWindow(trendPeriod)
	if err != nil {
		if errors.Is(err, analyzer.ErrInsufficientData) {
			fmt.Printf("Not enough activity in the last %d days to compute a trend.\n", trendPeriod)
			fmt.Println("Log more activities or try a shorter --period.")
			return nil
		}
		return err
	}

	fmt.Print(report.RenderTrendSummary(trend, trendPeriod))
	return nil
}
