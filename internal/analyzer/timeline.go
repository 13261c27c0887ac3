package analyzer

import "fmt"

// Timeline returns total estimated emissions per day over the last N days,
// oldest first. Days with no logged activity are absent from the result.
func (a *Analyzer) Timeline(days int) ([]DailyEmission, error) {
	if days <= 0 {
		return nil, fmt.Errorf("invalid days: %d (must be positive)", days)
	}

	totals, err := a.store.DailyTotals(days)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}

	timeline := make([]DailyEmission, 0, len(totals))
	for _, total := range totals {
		timeline = append(timeline, DailyEmission{
			Date:      total.Date,
			Emissions: total.Emissions,
		})
	}

	return timeline, nil
}
