package analyzer

import (
	"fmt"
	"math"

	"github.com/fernwood-labs/carbontrack/internal/store"
)

// TrendWindow compares the mean daily emissions of the most recent
// periodDays against the period immediately before it. The recorded days in
// the 2×periodDays window are split at the midpoint; fewer recorded days than
// periodDays yields ErrInsufficientData.
func (a *Analyzer) TrendWindow(periodDays int) (*Trend, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("invalid period: %d (must be positive)", periodDays)
	}

	totals, err := a.store.DailyTotals(periodDays * 2)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}

	if len(totals) < periodDays {
		return nil, fmt.Errorf("%w: have %d day(s), need %d", ErrInsufficientData, len(totals), periodDays)
	}

	midpoint := len(totals) / 2
	previousAvg := meanEmissions(totals[:midpoint])
	recentAvg := meanEmissions(totals[midpoint:])

	var changePercent float64
	switch {
	case previousAvg != 0:
		changePercent = (recentAvg - previousAvg) / previousAvg * 100
	case recentAvg != 0:
		changePercent = 100
	}

	direction := "decreasing"
	if changePercent > 0 {
		direction = "increasing"
	}

	return &Trend{
		RecentAvg:     round2(recentAvg),
		PreviousAvg:   round2(previousAvg),
		ChangePercent: round2(changePercent),
		Direction:     direction,
	}, nil
}

func meanEmissions(totals []*store.DailyTotal) float64 {
	if len(totals) == 0 {
		return 0
	}
	var sum float64
	for _, t := range totals {
		sum += t.Emissions
	}
	return sum / float64(len(totals))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
