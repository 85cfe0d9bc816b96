package trip

import (
	"iter"
	"time"
)

// SixHourAligned yields every 6-hour-aligned timestamp (00:00, 06:00,
// 12:00, 18:00) from the start of start's calendar day through the end of
// end's calendar day: (days between the two dates + 1) * 4 points. The
// sequence is finite and can be ranged over more than once.
func SixHourAligned(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		first := startOfDay(start)
		days := int(startOfDay(end).Sub(first) / (24 * time.Hour))
		for i := range (days + 1) * 4 {
			if !yield(first.Add(time.Duration(i) * 6 * time.Hour)) {
				return
			}
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
