package analyzer

import (
	"errors"
	"time"
)

// DefaultThreshold is the materiality threshold applied when no explicit
// value is configured: categories whose potential reduction does not exceed
// it are left out of the suggestion report.
const DefaultThreshold = 1.0

// ErrInsufficientData indicates a trend window with fewer recorded days than
// the comparison period requires.
var ErrInsufficientData = errors.New("not enough recorded days to compute a trend")

// Opportunity is one reduction suggestion: a category whose estimated
// potential reduction exceeds the materiality threshold.
type Opportunity struct {
	CategoryName       string  `json:"category_name"`
	CarbonFactor       float64 `json:"carbon_factor"`
	AvgQuantity        float64 `json:"avg_quantity"`
	PotentialReduction float64 `json:"potential_reduction"`
	Frequency          int     `json:"frequency"`
	Suggestion         string  `json:"suggestion"`
}

// DailyEmission is the total estimated emissions for one calendar day.
type DailyEmission struct {
	Date      time.Time `json:"date"`
	Emissions float64   `json:"emissions"`
}

// CategoryUsage summarizes how carbon-intensive one category has been.
type CategoryUsage struct {
	CategoryName   string  `json:"category_name"`
	AvgQuantity    float64 `json:"avg_quantity"`
	AvgEmissions   float64 `json:"avg_emissions"`
	TotalEmissions float64 `json:"total_emissions"`
	Frequency      int     `json:"frequency"`
}

// Trend compares mean daily emissions across two adjacent periods.
type Trend struct {
	RecentAvg     float64 `json:"recent_avg"`
	PreviousAvg   float64 `json:"previous_avg"`
	ChangePercent float64 `json:"change_percent"`
	Direction     string  `json:"trend"` // "increasing" or "decreasing"
}
