package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

// Dataset is the full export payload handed to the dashboard layer.
type Dataset struct {
	GeneratedAt   time.Time              `json:"generated_at"`
	Activities    []ActivityRecord       `json:"activities"`
	Opportunities []analyzer.Opportunity `json:"opportunities"`
}

// ActivityRecord is one joined activity row in serializable form.
type ActivityRecord struct {
	Date         string  `json:"date"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	CarbonFactor float64 `json:"carbon_factor"`
	Emissions    float64 `json:"emissions"`
}

// NewDataset assembles a Dataset from store rows and analyzer output.
func NewDataset(rows []*store.ExportRow, opps []analyzer.Opportunity) *Dataset {
	activities := make([]ActivityRecord, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, ActivityRecord{
			Date:         formatDate(row.Date),
			Category:     row.CategoryName,
			Unit:         row.Unit,
			Quantity:     row.Quantity,
			CarbonFactor: row.CarbonFactor,
			Emissions:    row.Emissions,
		})
	}

	return &Dataset{
		GeneratedAt:   time.Now(),
		Activities:    activities,
		Opportunities: opps,
	}
}

// WriteJSON encodes the dataset as indented JSON.
func (d *Dataset) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}

// WriteActivitiesCSV writes the joined activity rows as CSV with a header.
func (d *Dataset) WriteActivitiesCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "category", "unit", "quantity", "carbon_factor", "emissions"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range d.Activities {
		row := []string{
			rec.Date,
			rec.Category,
			rec.Unit,
			formatFloat(rec.Quantity),
			formatFloat(rec.CarbonFactor),
			formatFloat(rec.Emissions),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteOpportunitiesCSV writes the reduction-opportunity report as CSV.
func (d *Dataset) WriteOpportunitiesCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"category", "carbon_factor", "avg_quantity", "potential_reduction", "frequency", "suggestion"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, opp := range d.Opportunities {
		row := []string{
			opp.CategoryName,
			formatFloat(opp.CarbonFactor),
			formatFloat(opp.AvgQuantity),
			formatFloat(opp.PotentialReduction),
			strconv.Itoa(opp.Frequency),
			opp.Suggestion,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
