package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the storage format for activity_date columns. SQLite's date()
// functions understand this layout, which the aggregation queries rely on.
const dateLayout = "2006-01-02"

// Category operations

// UpsertCategory inserts a category if it does not exist and returns its ID.
// An existing category is left untouched: carbon factors are immutable once
// set, since rewriting one would retroactively change historical estimates.
func (s *Store) UpsertCategory(cat *Category) (int64, error) {
	query := `
		INSERT OR IGNORE INTO activity_categories (category_name, unit, carbon_factor)
		VALUES (?, ?, ?)
	`

	result, err := s.db.Exec(query, cat.Name, cat.Unit, cat.CarbonFactor)
	if err != nil {
		return 0, wrapSchemaErr(fmt.Errorf("failed to insert category %s: %w", cat.Name, err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows > 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get category ID: %w", err)
		}
		return id, nil
	}

	// Already present; return the existing row's ID.
	existing, err := s.GetCategory(cat.Name)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// GetCategory retrieves a category by name.
func (s *Store) GetCategory(name string) (*Category, error) {
	query := `
		SELECT category_id, category_name, unit, carbon_factor
		FROM activity_categories
		WHERE category_name = ?
	`

	var cat Category
	err := s.db.QueryRow(query, name).Scan(
		&cat.ID,
		&cat.Name,
		&cat.Unit,
		&cat.CarbonFactor,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	if err != nil {
		return nil, wrapSchemaErr(fmt.Errorf("failed to get category %s: %w", name, err))
	}

	return &cat, nil
}

// ListCategories returns the full emission-factor catalog ordered by name.
func (s *Store) ListCategories() ([]*Category, error) {
	query := `
		SELECT category_id, category_name, unit, carbon_factor
		FROM activity_categories
		ORDER BY category_name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapSchemaErr(fmt.Errorf("failed to list categories: %w", err))
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Unit, &cat.CarbonFactor); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, &cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Activity operations

// InsertActivity appends one activity record and returns its ID.
func (s *Store) InsertActivity(act *Activity) (int64, error) {
	query := `
		INSERT INTO daily_activities (category_id, activity_date, quantity, logged_at)
		VALUES (?, ?, ?, ?)
	`

	loggedAt := act.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	result, err := s.db.Exec(query,
		act.CategoryID,
		act.Date.Format(dateLayout),
		act.Quantity,
		loggedAt.Format(time.RFC3339),
	)

	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return 0, fmt.Errorf("%w: id %d", ErrUnknownCategory, act.CategoryID)
		}
		return 0, wrapSchemaErr(fmt.Errorf("failed to insert activity: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get activity ID: %w", err)
	}

	return id, nil
}

// CountActivities returns the total number of activity records.
func (s *Store) CountActivities() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM daily_activities").Scan(&count)
	if err != nil {
		return 0, wrapSchemaErr(fmt.Errorf("failed to count activities: %w", err))
	}
	return count, nil
}

// CountOrphanedActivities returns the number of activity records whose
// category reference does not resolve. The foreign-key pragma prevents these
// from being written through this store, but a database produced elsewhere
// may still contain them.
func (s *Store) CountOrphanedActivities() (int, error) {
	query := `
		SELECT COUNT(*)
		FROM daily_activities da
		LEFT JOIN activity_categories ac ON da.category_id = ac.category_id
		WHERE ac.category_id IS NULL
	`

	var count int
	if err := s.db.QueryRow(query).Scan(&count); err != nil {
		return 0, wrapSchemaErr(fmt.Errorf("failed to check activity integrity: %w", err))
	}
	return count, nil
}

// Aggregation queries

// CategoryAggregates groups all activity records by category and returns one
// row per category whose potential reduction (average quantity times carbon
// factor) strictly exceeds the threshold, ordered by potential reduction
// descending with category name as the tie-break.
func (s *Store) CategoryAggregates(threshold float64) ([]*CategoryAggregate, error) {
	query := `
		SELECT
			ac.category_name,
			ac.carbon_factor,
			AVG(da.quantity) AS avg_quantity,
			AVG(da.quantity) * ac.carbon_factor AS potential_reduction,
			COUNT(*) AS frequency
		FROM daily_activities da
		JOIN activity_categories ac ON da.category_id = ac.category_id
		GROUP BY ac.category_id
		HAVING AVG(da.quantity) * ac.carbon_factor > ?
		ORDER BY potential_reduction DESC, ac.category_name ASC
	`

	rows, err := s.db.Query(query, threshold)
	if err != nil {
		return nil, wrapSchemaErr(fmt.Errorf("failed to aggregate categories: %w", err))
	}
	defer rows.Close()

	var aggregates []*CategoryAggregate
	for rows.Next() {
		var agg CategoryAggregate
		err := rows.Scan(
			&agg.CategoryName,
			&agg.CarbonFactor,
			&agg.AvgQuantity,
			&agg.PotentialReduction,
			&agg.Frequency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		aggregates = append(aggregates, &agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregates: %w", err)
	}

	return aggregates, nil
}

// DailyTotals returns total emissions per calendar day for the last N days,
// oldest first. Days with no recorded activity are simply absent.
func (s *Store) DailyTotals(days int) ([]*DailyTotal, error) {
	query := `
		SELECT
			da.activity_date,
			SUM(da.quantity * ac.carbon_factor) AS daily_carbon
		FROM daily_activities da
		JOIN activity_categories ac ON da.category_id = ac.category_id
		WHERE da.activity_date >= date('now', ?)
		GROUP BY da.activity_date
		ORDER BY da.activity_date
	`

	rows, err := s.db.Query(query, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, wrapSchemaErr(fmt.Errorf("failed to get daily totals: %w", err))
	}
	defer rows.Close()

	var totals []*DailyTotal
	for rows.Next() {
		var total DailyTotal

		if err := rows.Scan(&total.Date, &total.Emissions); err != nil {
			return nil, fmt.Errorf("failed to scan daily total row: %w", err)
		}

		totals = append(totals, &total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily totals: %w", err)
	}

	return totals, nil
}

// TopCategories returns the categories with the highest total emissions,
// limited to the given count.
func (s *Store) TopCategories(limit int) ([]*CategoryUsage, error) {
	query := `
		SELECT
			ac.category_name,
			AVG(da.quantity) AS avg_quantity,
			AVG(da.quantity * ac.carbon_factor) AS avg_carbon,
			SUM(da.quantity * ac.carbon_factor) AS total_carbon,
			COUNT(*) AS frequency
		FROM daily_activities da
		JOIN activity_categories ac ON da.category_id = ac.category_id
		GROUP BY ac.category_name
		ORDER BY total_carbon DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, wrapSchemaErr(fmt.Errorf("failed to get top categories: %w", err))
	}
	defer rows.Close()

	var usages []*CategoryUsage
	for rows.Next() {
		var usage CategoryUsage
		err := rows.Scan(
			&usage.CategoryName,
			&usage.AvgQuantity,
			&usage.AvgEmissions,
			&usage.TotalEmissions,
			&usage.Frequency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category usage row: %w", err)
		}
		usages = append(usages, &usage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category usage: %w", err)
	}

	return usages, nil
}

// ExportRows returns every activity record joined with its category, newest
// first, for handing off to the reporting layer.
func (s *Store) ExportRows() ([]*ExportRow, error) {
	query := `
		SELECT
			da.activity_date,
			ac.category_name,
			ac.unit,
			da.quantity,
			ac.carbon_factor,
			da.quantity * ac.carbon_factor AS emissions
		FROM daily_activities da
		JOIN activity_categories ac ON da.category_id = ac.category_id
		ORDER BY da.activity_date DESC, ac.category_name ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapSchemaErr(fmt.Errorf("failed to query export rows: %w", err))
	}
	defer rows.Close()

	var export []*ExportRow
	for rows.Next() {
		var row ExportRow

		err := rows.Scan(
			&row.Date,
			&row.CategoryName,
			&row.Unit,
			&row.Quantity,
			&row.CarbonFactor,
			&row.Emissions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}

		export = append(export, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}

	return export, nil
}
