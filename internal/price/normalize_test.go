package price

import (
	"math"
	"testing"
	"time"
)

func TestNormalizeAppliesTaxMultiplier(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	doc := &DayDocument{
		Date: "2026-08-30",
		Records: []RawRecord{
			{Start: start, Value: 10.0},
			{Start: start.Add(time.Hour), Value: 2.5},
		},
	}

	points := Normalize(doc, 1.24)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if math.Abs(points[0].Price-12.4) > 1e-9 {
		t.Errorf("expected tax-inclusive price 12.4, got %v", points[0].Price)
	}
	if math.Abs(points[1].Price-3.1) > 1e-9 {
		t.Errorf("expected tax-inclusive price 3.1, got %v", points[1].Price)
	}
	if !points[0].Start.Equal(start) {
		t.Errorf("start time changed during normalization: %v", points[0].Start)
	}
}

func TestNormalizeAbsentDocument(t *testing.T) {
	// A failed or absent fetch contributes no data and never an error.
	if points := Normalize(nil, 1.24); len(points) != 0 {
		t.Fatalf("expected empty sequence for nil document, got %d points", len(points))
	}
	if points := Normalize(&DayDocument{Date: "2026-08-30"}, 1.24); len(points) != 0 {
		t.Fatalf("expected empty sequence for empty document, got %d points", len(points))
	}
}

func TestNormalizeSkipsRecordsWithoutTimestamp(t *testing.T) {
	doc := &DayDocument{
		Records: []RawRecord{
			{Value: 5.0}, // no start time
			{Start: time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC), Value: 5.0},
		},
	}
	points := Normalize(doc, 1.0)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
}
