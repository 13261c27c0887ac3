package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/report"
)

var timelineDays int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show daily emission totals",
	Long: `Show summed emissions per calendar day over a recent window.

Days with no logged activity are omitted rather than shown as zero.`,
	Example: `  # Last 30 days (default)
  carbontrack timeline

  # Last week
  carbontrack timeline --days 7`,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().IntVar(&timelineDays, "days", 30, "Window size in days")
	RootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	timeline, err := analyzer.New(st).Timeline(timelineDays)
	if err != nil {
		return err
	}

	fmt.Print(report.RenderTimelineTable(timeline))
	return nil
}
