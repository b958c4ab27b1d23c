package goldprice

import (
	"sort"
	"time"
)

// FetchWindows is the daily quota policy: live fetches are only allowed in a
// few fixed local-time slots, each open for the grace duration. Coarser than
// a request counter, but there is nothing to persist and nothing to reset at
// midnight.
type FetchWindows struct {
	Hours []int
	Grace time.Duration
}

func NewFetchWindows(hours []int, grace time.Duration) FetchWindows {
	cleaned := make([]int, 0, len(hours))
	for _, hour := range hours {
		if hour >= 0 && hour <= 23 {
			cleaned = append(cleaned, hour)
		}
	}
	sort.Ints(cleaned)

	return FetchWindows{Hours: cleaned, Grace: grace}
}

// Contains reports whether t falls inside one of the slots, in t's location.
func (w FetchWindows) Contains(t time.Time) bool {
	for _, hour := range w.Hours {
		start := time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
		if !t.Before(start) && t.Before(start.Add(w.Grace)) {
			return true
		}
	}
	return false
}
