package price

import (
	"fmt"
	"time"

	"spotboard/internal/common"
)

// CurrentTimeID keys the current-hour highlight so callers can diff/replace
// it without touching the day annotations.
const CurrentTimeID = "currentTime"

// weekdayNames are the provider-local short weekday names, indexed by
// time.Weekday (Sunday first).
var weekdayNames = [...]string{"su", "ma", "ti", "ke", "to", "pe", "la"}

// Annotate derives the presentation-independent markers for a series:
// a current-hour box when currentIdx >= 0, a boundary line at every index
// where the calendar date (in loc) changes, and weekday labels for the day
// segments.
//
// Label candidates are the series start plus each boundary index, and the
// candidate following the final boundary is always dropped, so the label
// count equals the number of day segments minus one. A series covering a
// single date therefore gets no label at all. This asymmetry keeps the last
// segment, which is usually truncated, from carrying an overflowing label;
// it is intentional and covered by tests.
func Annotate(s Series, currentIdx int, loc *time.Location) map[string]Annotation {
	anns := make(map[string]Annotation)

	if currentIdx >= 0 {
		anns[CurrentTimeID] = currentHourBox(currentIdx)
	}

	var labelAt []int
	if len(s) > 0 {
		labelAt = append(labelAt, 0)
	}
	for i := 1; i < len(s); i++ {
		if common.SameDate(s[i-1].Start, s[i].Start, loc) {
			continue
		}
		id := fmt.Sprintf("dayChange%d", i)
		x := float64(i) - 0.5
		anns[id] = Annotation{
			ID:    id,
			Kind:  KindDayBoundaryLine,
			Index: i,
			XMin:  x,
			XMax:  x,
		}
		labelAt = append(labelAt, i)
	}

	// Drop the candidate after the final boundary.
	labelAt = labelAt[:max(len(labelAt)-1, 0)]

	for _, i := range labelAt {
		id := fmt.Sprintf("weekday%d", i)
		wd := s[i].Start.In(loc).Weekday()
		anns[id] = Annotation{
			ID:    id,
			Kind:  KindWeekdayLabel,
			Index: i,
			XMin:  float64(i),
			XMax:  float64(i),
			Label: weekdayNames[wd],
		}
	}

	return anns
}

func currentHourBox(idx int) Annotation {
	return Annotation{
		ID:    CurrentTimeID,
		Kind:  KindCurrentHourBox,
		Index: idx,
		XMin:  float64(idx) - 0.5,
		XMax:  float64(idx) + 0.5,
	}
}
