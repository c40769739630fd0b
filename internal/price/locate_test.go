package price

import (
	"testing"
	"time"
)

func TestLocateInsideInterval(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	series := Series(hourlyDay(day, 48, 1))

	// 30 minutes into the 10th point's hour.
	now := series[9].Start.Add(30 * time.Minute)
	idx, ok := Locate(series, now)
	if !ok {
		t.Fatalf("expected a hit at %v", now)
	}
	if idx != 9 {
		t.Fatalf("expected index 9, got %d", idx)
	}
}

func TestLocateIntervalBounds(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	series := Series(hourlyDay(day, 24, 1))

	// The interval is half-open: start inclusive, start+1h exclusive.
	if idx, ok := Locate(series, series[5].Start); !ok || idx != 5 {
		t.Errorf("expected index 5 at interval start, got %d (ok=%v)", idx, ok)
	}
	if idx, ok := Locate(series, series[5].Start.Add(time.Hour)); !ok || idx != 6 {
		t.Errorf("expected index 6 at next interval start, got %d (ok=%v)", idx, ok)
	}
}

func TestLocateMiss(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	series := Series(hourlyDay(day, 24, 1))

	before := day.Add(-time.Minute)
	if _, ok := Locate(series, before); ok {
		t.Errorf("expected a miss before the series start")
	}

	after := series[23].Start.Add(time.Hour)
	if _, ok := Locate(series, after); ok {
		t.Errorf("expected a miss after the series end")
	}
}

func TestLocateMissInGap(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	full := hourlyDay(day, 24, 1)
	series := Series(append(append([]HourPrice{}, full[:10]...), full[12:]...))

	inGap := full[10].Start.Add(15 * time.Minute)
	if idx, ok := Locate(series, inGap); ok {
		t.Fatalf("expected a miss inside data gap, got index %d", idx)
	}
}

func TestLocateEmptySeries(t *testing.T) {
	if _, ok := Locate(nil, time.Now()); ok {
		t.Fatal("expected a miss on an empty series")
	}
}
