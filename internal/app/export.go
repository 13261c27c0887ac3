package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/logging"
	"github.com/fernwood-labs/carbontrack/internal/report"
	"github.com/fernwood-labs/carbontrack/internal/watcher"
)

var (
	exportFormat      string
	exportOut         string
	exportSuggestions bool
	exportWatch       bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset for dashboards and other tools",
	Long: `Export logged activities and the current reduction report.

JSON exports carry both the activity journal and the suggestion report in a
single document. CSV exports carry the activity journal by default; pass
--suggestions for the report instead.

With --watch the export file is rewritten whenever the database changes,
which keeps a dashboard hand-off file current while activities are being
logged from elsewhere. --watch requires --out.`,
	Example: `  # Activities as CSV to stdout
  carbontrack export

  # Full dataset as JSON
  carbontrack export --format json --out carbon.json

  # Suggestion report as CSV
  carbontrack export --suggestions --out report.csv

  # Keep a dashboard file current
  carbontrack export --format json --out carbon.json --watch`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportSuggestions, "suggestions", false, "Export the suggestion report instead of the activity journal (CSV only)")
	exportCmd.Flags().BoolVar(&exportWatch, "watch", false, "Rewrite the export whenever the database changes")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("invalid format %q: expected csv or json", exportFormat)
	}
	if exportWatch && exportOut == "" {
		return fmt.Errorf("--watch requires --out")
	}

	if !exportWatch {
		return exportOnce()
	}

	logger := logging.New(resolveLogLevel())

	path, err := resolveDBPath()
	if err != nil {
		return err
	}

	w, err := watcher.New(path, logger, exportOnce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	logger.Info().Str("out", exportOut).Msg("export will refresh on database changes, Ctrl-C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	return w.Stop()
}

// exportOnce runs a single export pass to --out or stdout.
func exportOnce() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.ExportRows()
	if err != nil {
		return err
	}

	opps, err := analyzer.New(st).ReductionOpportunities(loadConfig().Threshold)
	if err != nil {
		return err
	}

	dataset := report.NewDataset(rows, opps)

	out := os.Stdout
	if exportOut != "" {
		// Write to a temp file and rename so watchers of the export file
		// never see a half-written document.
		tmp, err := os.CreateTemp(filepath.Dir(exportOut), ".carbontrack-export-*")
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if err := writeDataset(dataset, tmp); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmp.Name(), exportOut)
	}

	return writeDataset(dataset, out)
}

func writeDataset(dataset *report.Dataset, f *os.File) error {
	switch {
	case exportFormat == "json":
		return dataset.WriteJSON(f)
	case exportSuggestions:
		return dataset.WriteOpportunitiesCSV(f)
	default:
		return dataset.WriteActivitiesCSV(f)
	}
}
