package price

// Normalize converts one raw day document into hourly price points with the
// configured tax multiplier applied. A nil document (failed or absent fetch)
// yields an empty sequence: partial data availability is expected and normal,
// e.g. tomorrow's prices before the provider has published them.
func Normalize(doc *DayDocument, taxMultiplier float64) []HourPrice {
	if doc == nil || len(doc.Records) == 0 {
		return nil
	}

	points := make([]HourPrice, 0, len(doc.Records))
	for _, r := range doc.Records {
		if r.Start.IsZero() {
			continue
		}
		points = append(points, HourPrice{
			Start: r.Start,
			Price: r.Value * taxMultiplier,
		})
	}
	return points
}
