package price

// Assemble merges per-date normalized sequences, given in chronological date
// order (yesterday, today, tomorrow), into one Series.
//
// Only the two most recent dates that actually produced data are retained:
// when all three resolve, yesterday's contribution is discarded. Entries are
// concatenated in the given order and never reordered; any entry whose start
// time is not strictly after its predecessor is dropped, which enforces both
// the ordering and the uniqueness invariant. Gaps between entries are
// tolerated.
//
// If no date produced data the cycle cannot proceed: ErrDataUnavailable is
// returned and no Series is produced.
func Assemble(days ...[]HourPrice) (Series, error) {
	var kept [][]HourPrice
	for _, d := range days {
		if len(d) > 0 {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return nil, ErrDataUnavailable
	}
	if len(kept) > 2 {
		kept = kept[len(kept)-2:]
	}

	var series Series
	for _, d := range kept {
		for _, p := range d {
			if len(series) > 0 && !p.Start.After(series[len(series)-1].Start) {
				continue
			}
			series = append(series, p)
		}
	}
	if len(series) == 0 {
		return nil, ErrDataUnavailable
	}
	return series, nil
}
