// Package report renders carbontrack analytics for the terminal and encodes
// datasets for the external dashboard layer.
//
// Table rendering uses ASCII layout with ANSI color codes; colors are only
// emitted when stdout is a TTY and NO_COLOR is unset.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

// ANSI color codes for emphasis in terminal output
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Green wraps s in green ANSI codes when color output is enabled.
func Green(s string) string {
	if !IsColorEnabled() {
		return s
	}
	return colorGreen + s + colorReset
}

// RenderOpportunityTable renders the reduction-opportunity report.
// Expects opportunities to be pre-sorted by the analyzer.
func RenderOpportunityTable(opps []analyzer.Opportunity) string {
	if len(opps) == 0 {
		return "No category currently exceeds the materiality threshold.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-22s %-8s %-10s %-10s %-8s %s\n",
		"Category", "Factor", "Avg Qty", "Potential", "Entries", "Suggestion"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, opp := range opps {
		potential := fmt.Sprintf("%.2f", opp.PotentialReduction)
		if IsColorEnabled() {
			potential = potentialColor(opp.PotentialReduction) + potential + colorReset
		}

		sb.WriteString(fmt.Sprintf("%-22s %-8s %-10s %-10s %-8d %s\n",
			truncate(opp.CategoryName, 22),
			fmt.Sprintf("%.3f", opp.CarbonFactor),
			fmt.Sprintf("%.2f", opp.AvgQuantity),
			potential,
			opp.Frequency,
			opp.Suggestion))
	}

	return sb.String()
}

// potentialColor grades potential reduction for display: the largest savings
// get the loudest color.
func potentialColor(potential float64) string {
	switch {
	case potential >= 10:
		return colorRed
	case potential >= 5:
		return colorYellow
	default:
		return colorGreen
	}
}

// RenderCategoryTable renders the emission-factor catalog.
func RenderCategoryTable(categories []*store.Category) string {
	if len(categories) == 0 {
		return "No categories found. Run 'carbontrack init' first.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-22s %-6s %s\n", "Category", "Unit", "Factor (kg CO2/unit)"))
	sb.WriteString(strings.Repeat("─", 52))
	sb.WriteString("\n")

	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("%-22s %-6s %.4f\n",
			truncate(cat.Name, 22),
			cat.Unit,
			cat.CarbonFactor))
	}

	return sb.String()
}

// RenderTimelineTable renders daily emission totals, oldest first.
func RenderTimelineTable(timeline []analyzer.DailyEmission) string {
	if len(timeline) == 0 {
		return "No activity recorded in this window.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-12s %s\n", "Date", "Emissions (kg CO2)"))
	sb.WriteString(strings.Repeat("─", 32))
	sb.WriteString("\n")

	var total float64
	for _, day := range timeline {
		sb.WriteString(fmt.Sprintf("%-12s %.2f\n", day.Date.Format("2006-01-02"), day.Emissions))
		total += day.Emissions
	}

	sb.WriteString(strings.Repeat("─", 32))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-12s %.2f\n", "Total", total))

	return sb.String()
}

// RenderTopTable renders the most carbon-intensive categories.
func RenderTopTable(usages []analyzer.CategoryUsage) string {
	if len(usages) == 0 {
		return "No activity recorded yet.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-22s %-10s %-10s %-10s %s\n",
		"Category", "Avg Qty", "Avg CO2", "Total CO2", "Entries"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, usage := range usages {
		sb.WriteString(fmt.Sprintf("%-22s %-10s %-10s %-10s %d\n",
			truncate(usage.CategoryName, 22),
			fmt.Sprintf("%.2f", usage.AvgQuantity),
			fmt.Sprintf("%.2f", usage.AvgEmissions),
			fmt.Sprintf("%.2f", usage.TotalEmissions),
			usage.Frequency))
	}

	return sb.String()
}

// RenderTrendSummary renders a period-over-period comparison.
func RenderTrendSummary(trend *analyzer.Trend, periodDays int) string {
	var sb strings.Builder

	arrow := "↓"
	color := colorGreen
	if trend.Direction == "increasing" {
		arrow = "↑"
		color = colorRed
	}

	sb.WriteString(fmt.Sprintf("Period: last %d days vs the %d days before\n", periodDays, periodDays))
	sb.WriteString(fmt.Sprintf("Previous avg: %.2f kg CO2/day\n", trend.PreviousAvg))
	sb.WriteString(fmt.Sprintf("Recent avg:   %.2f kg CO2/day\n", trend.RecentAvg))

	line := fmt.Sprintf("Trend: %s %s by %.1f%%", arrow, trend.Direction, abs(trend.ChangePercent))
	if IsColorEnabled() {
		line = color + line + colorReset
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// formatDate formats a calendar day for export output.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
