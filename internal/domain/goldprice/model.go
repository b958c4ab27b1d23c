package goldprice

import (
	"math"
	"time"
)

// Snapshot holds the gold prices the groups contribute in, per coin size.
type Snapshot struct {
	Gram    int       `json:"gram"`
	Quarter int       `json:"quarter"`
	Half    int       `json:"half"`
	Full    int       `json:"full"`
	AsOf    time.Time `json:"as_of"`
}

// Coin sizes trade at fixed multiples of the gram price: a quarter coin
// weighs 1.75g, a half 3.5g, a full 7g.
const (
	quarterRatio = 1.75
	halfRatio    = 3.5
	fullRatio    = 7
)

// NewSnapshot fills in whatever sizes the provider omitted from the ones it
// returned. At least one of gram or quarter must be known.
func NewSnapshot(gram, quarter, half, full int, asOf time.Time) Snapshot {
	if gram == 0 && quarter > 0 {
		gram = roundRatio(float64(quarter), 1/quarterRatio)
	}
	if gram > 0 {
		if quarter == 0 {
			quarter = roundRatio(float64(gram), quarterRatio)
		}
		if half == 0 {
			half = roundRatio(float64(gram), halfRatio)
		}
		if full == 0 {
			full = roundRatio(float64(gram), fullRatio)
		}
	}

	return Snapshot{
		Gram:    gram,
		Quarter: quarter,
		Half:    half,
		Full:    full,
		AsOf:    asOf,
	}
}

// DefaultSnapshot is the static last-resort price served when no live fetch
// is allowed and no cache exists.
func DefaultSnapshot(gram int, asOf time.Time) Snapshot {
	return NewSnapshot(gram, 0, 0, 0, asOf)
}

func roundRatio(value, ratio float64) int {
	return int(math.Round(value * ratio))
}
