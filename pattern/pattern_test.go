package pattern

import (
	"time"

	"github.com/quantrail/breakout/market"
)

// turn is a vertex of a synthetic zigzag price path.
type turn struct {
	idx int
	p   float64
}

// zigzagBars builds a bar series that linearly interpolates between the
// turns. Each bar carries a 0.3 spread around the path, so the turns are
// the only strict local extremes and land exactly where pivot detection
// should find them.
func zigzagBars(turns []turn) []market.Bar {
	n := turns[len(turns)-1].idx + 1
	path := make([]float64, n)
	for k := 0; k+1 < len(turns); k++ {
		a, b := turns[k], turns[k+1]
		span := float64(b.idx - a.idx)
		for i := a.idx; i <= b.idx; i++ {
			frac := float64(i-a.idx) / span
			path[i] = a.p + (b.p-a.p)*frac
		}
	}

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, n)
	for i, p := range path {
		bars[i] = market.Bar{
			Time:  base.Add(time.Duration(i) * time.Hour),
			Open:  p,
			High:  p + 0.3,
			Low:   p - 0.3,
			Close: p,
		}
	}
	return bars
}
