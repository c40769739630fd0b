package price

import "time"

// Locate returns the index of the series entry whose interval
// [Start, Start+1h) contains now, or (-1, false) if now falls outside every
// retained interval. A miss is a normal outcome (data gap, or now outside the
// retained window); dependent views degrade to an explicit "unknown" state.
//
// Locate is a pure, stateless lookup. Callers re-invoke it as "now" advances;
// the series is small enough (at most 72 points) that a linear scan is fine.
func Locate(s Series, now time.Time) (int, bool) {
	for i, p := range s {
		if !now.Before(p.Start) && now.Before(p.Start.Add(time.Hour)) {
			return i, true
		}
	}
	return -1, false
}
