package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fernwood-labs/carbontrack/internal/analyzer"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

func testDataset() *Dataset {
	rows := []*store.ExportRow{
		{
			Date:         time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			CategoryName: "Electricity",
			Unit:         "kWh",
			Quantity:     20,
			CarbonFactor: 0.5,
			Emissions:    10,
		},
		{
			Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CategoryName: "Electricity",
			Unit:         "kWh",
			Quantity:     10,
			CarbonFactor: 0.5,
			Emissions:    5,
		},
	}
	opps := []analyzer.Opportunity{
		{
			CategoryName:       "Electricity",
			CarbonFactor:       0.5,
			AvgQuantity:        15,
			PotentialReduction: 7.5,
			Frequency:          2,
			Suggestion:         "Reduce Electricity usage by 20%",
		},
	}
	return NewDataset(rows, opps)
}

func TestWriteJSON(t *testing.T) {
	ds := testDataset()

	var buf bytes.Buffer
	if err := ds.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded Dataset
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if len(decoded.Activities) != 2 {
		t.Errorf("decoded %d activities, want 2", len(decoded.Activities))
	}
	if decoded.Activities[0].Date != "2024-03-02" {
		t.Errorf("first activity date = %s, want 2024-03-02", decoded.Activities[0].Date)
	}
	if len(decoded.Opportunities) != 1 {
		t.Fatalf("decoded %d opportunities, want 1", len(decoded.Opportunities))
	}
	if decoded.Opportunities[0].Suggestion != "Reduce Electricity usage by 20%" {
		t.Errorf("suggestion = %q", decoded.Opportunities[0].Suggestion)
	}
}

func TestWriteActivitiesCSV(t *testing.T) {
	ds := testDataset()

	var buf bytes.Buffer
	if err := ds.WriteActivitiesCSV(&buf); err != nil {
		t.Fatalf("WriteActivitiesCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("got %d CSV records, want 3", len(records))
	}
	if records[0][0] != "date" || records[0][5] != "emissions" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Electricity" || records[1][3] != "20" {
		t.Errorf("unexpected first row: %v", records[1])
	}
}

func TestWriteOpportunitiesCSV(t *testing.T) {
	ds := testDataset()

	var buf bytes.Buffer
	if err := ds.WriteOpportunitiesCSV(&buf); err != nil {
		t.Fatalf("WriteOpportunitiesCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}

	if len(records) != 2 { // header + 1 row
		t.Fatalf("got %d CSV records, want 2", len(records))
	}
	row := records[1]
	if row[0] != "Electricity" {
		t.Errorf("category = %s", row[0])
	}
	if row[3] != "7.5" {
		t.Errorf("potential_reduction = %s, want 7.5", row[3])
	}
	if !strings.Contains(row[5], "20%") {
		t.Errorf("suggestion = %s", row[5])
	}
}

func TestWriteOpportunitiesCSV_EmptyReport(t *testing.T) {
	ds := NewDataset(nil, nil)

	var buf bytes.Buffer
	if err := ds.WriteOpportunitiesCSV(&buf); err != nil {
		t.Fatalf("WriteOpportunitiesCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("empty report should still write the header, got %d records", len(records))
	}
}
