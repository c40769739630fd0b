package price

import (
	"time"

	"spotboard/internal/common"
)

// minRefreshSeconds is the floor for the revalidation hint: once the naive
// cutoff has passed, clamping here prevents refresh storms while the provider
// is late publishing.
const minRefreshSeconds = 60

// NextRefresh decides how long the assembled series may be treated as fresh.
//
// The provider publishes the next day's prices at cutoffHourUTC. The next
// update instant is today at that cutoff; when the series already ends on a
// date after today's (tomorrow's data is present), there is nothing new to
// fetch until the cutoff of the following day.
func NextRefresh(s Series, now time.Time, cutoffHourUTC int) RefreshDecision {
	nowUTC := now.UTC()
	nextUpdate := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), cutoffHourUTC, 0, 0, 0, time.UTC)

	if len(s) > 0 {
		lastDate := common.DateOnly(s[len(s)-1].Start, time.UTC)
		nowDate := common.DateOnly(nowUTC, time.UTC)
		if lastDate.After(nowDate) {
			nextUpdate = nextUpdate.AddDate(0, 0, 1)
		}
	}

	secs := int(nextUpdate.Sub(nowUTC).Seconds())
	if secs < minRefreshSeconds {
		secs = minRefreshSeconds
	}

	return RefreshDecision{
		ValidUntil:       nextUpdate,
		SecondsRemaining: secs,
	}
}
