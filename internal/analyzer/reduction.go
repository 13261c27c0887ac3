package analyzer

import (
	"fmt"

	"github.com/fernwood-labs/carbontrack/internal/store"
)

// ReductionOpportunities returns the categories whose estimated potential
// reduction (average logged quantity times carbon factor) strictly exceeds
// the threshold, ordered by potential reduction descending with category name
// as the tie-break. An empty database yields an empty slice, not an error.
//
// The snapshot is integrity-checked first: activity records referencing a
// nonexistent category make the whole report fail with
// store.ErrOrphanedActivities instead of being silently dropped by the join.
func (a *Analyzer) ReductionOpportunities(threshold float64) ([]Opportunity, error) {
	if err := a.checkIntegrity(); err != nil {
		return nil, err
	}

	aggregates, err := a.store.CategoryAggregates(threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activities: %w", err)
	}

	opportunities := make([]Opportunity, 0, len(aggregates))
	for _, agg := range aggregates {
		opportunities = append(opportunities, Opportunity{
			CategoryName:       agg.CategoryName,
			CarbonFactor:       agg.CarbonFactor,
			AvgQuantity:        agg.AvgQuantity,
			PotentialReduction: agg.PotentialReduction,
			Frequency:          agg.Frequency,
			Suggestion:         fmt.Sprintf("Reduce %s usage by 20%%", agg.CategoryName),
		})
	}

	return opportunities, nil
}

// checkIntegrity rejects snapshots with orphaned activity records.
func (a *Analyzer) checkIntegrity() error {
	orphans, err := a.store.CountOrphanedActivities()
	if err != nil {
		return fmt.Errorf("failed to verify activity integrity: %w", err)
	}
	if orphans > 0 {
		return fmt.Errorf("%w: %d orphaned record(s)", store.ErrOrphanedActivities, orphans)
	}
	return nil
}
