package store

import "time"

// Category is one entry of the emission-factor catalog. CarbonFactor is the
// emissions produced per unit quantity (kg CO2 per Unit) and is treated as
// immutable once set: historical records are interpreted against it, so
// UpsertCategory never overwrites an existing factor.
type Category struct {
	ID           int64
	Name         string
	Unit         string
	CarbonFactor float64
}

// Activity is a single logged activity record.
type Activity struct {
	ID         int64
	CategoryID int64
	Date       time.Time // calendar day; time component is ignored
	Quantity   float64
	LoggedAt   time.Time
}

// CategoryAggregate is one row of the per-category reduction aggregation.
type CategoryAggregate struct {
	CategoryName       string
	CarbonFactor       float64
	AvgQuantity        float64
	PotentialReduction float64
	Frequency          int
}

// DailyTotal is the summed emissions for one calendar day.
type DailyTotal struct {
	Date      time.Time
	Emissions float64
}

// CategoryUsage summarizes the recorded load of one category.
type CategoryUsage struct {
	CategoryName   string
	AvgQuantity    float64
	AvgEmissions   float64
	TotalEmissions float64
	Frequency      int
}

// ExportRow is one joined activity record as handed to the reporting layer.
type ExportRow struct {
	Date         time.Time
	CategoryName string
	Unit         string
	Quantity     float64
	CarbonFactor float64
	Emissions    float64
}
