package analyzer

import "fmt"

// TopActivities returns the categories with the highest total recorded
// emissions, limited to the given count (most intensive first).
func (a *Analyzer) TopActivities(limit int) ([]CategoryUsage, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit: %d (must be positive)", limit)
	}

	rows, err := a.store.TopCategories(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top categories: %w", err)
	}

	usages := make([]CategoryUsage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, CategoryUsage{
			CategoryName:   row.CategoryName,
			AvgQuantity:    row.AvgQuantity,
			AvgEmissions:   row.AvgEmissions,
			TotalEmissions: row.TotalEmissions,
			Frequency:      row.Frequency,
		})
	}

	return usages, nil
}
