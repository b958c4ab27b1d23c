package rotation

import (
	"errors"
	"time"
)

var ErrEmptyRoster = errors.New("empty roster")

// Slot binds one calendar month to the member hosting it.
type Slot struct {
	Month        int
	Year         int
	HostMemberID string
}

// Assign shuffles the roster and maps each member to one month, starting at
// now's month and advancing sequentially with December wrapping into January
// of the next year. The roster order is the stable creation order; passing a
// seed makes the shuffle reproducible.
func Assign(memberIDs []string, now time.Time, seed *int64) ([]Slot, error) {
	if len(memberIDs) == 0 {
		return nil, ErrEmptyRoster
	}

	var random Rand
	if seed != nil {
		random = NewSeeded(*seed)
	} else {
		random = NewSystem()
	}

	shuffled := shuffle(memberIDs, random)

	currentMonth := int(now.Month())
	currentYear := now.Year()

	slots := make([]Slot, 0, len(shuffled))
	for offset := 0; offset < len(shuffled); offset++ {
		monthOffset := currentMonth - 1 + offset
		slots = append(slots, Slot{
			Month:        monthOffset%12 + 1,
			Year:         currentYear + monthOffset/12,
			HostMemberID: shuffled[offset],
		})
	}

	return slots, nil
}

// shuffle is Fisher-Yates over a copy, iterating from the last index down so
// a seeded Rand always consumes draws in the same order.
func shuffle(memberIDs []string, random Rand) []string {
	shuffled := make([]string, len(memberIDs))
	copy(shuffled, memberIDs)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(random() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
