package market

import (
	"fmt"
	"math"
)

// Series is a time-ordered sequence of bars for one symbol.
//
// The constructor validates what the engine downstream relies on:
// strictly increasing timestamps, no duplicates, finite prices.
// Feeds that cannot satisfy this must be cleaned before loading.
type Series struct {
	Symbol string
	Bars   []Bar

	hasVolume bool
}

// NewSeries validates bars and wraps them in a Series.
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	s := &Series{Symbol: symbol, Bars: bars}

	for i, b := range bars {
		if !finite(b.Open) || !finite(b.High) || !finite(b.Low) || !finite(b.Close) {
			return nil, fmt.Errorf("series %s: bar %d has non-finite price", symbol, i)
		}
		if b.High < b.Low {
			return nil, fmt.Errorf("series %s: bar %d high %.6f below low %.6f", symbol, i, b.High, b.Low)
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return nil, fmt.Errorf("series %s: bar %d time %s not after previous %s",
				symbol, i, b.Time, bars[i-1].Time)
		}
		if b.Volume > 0 {
			s.hasVolume = true
		}
	}

	return s, nil
}

func (s *Series) Len() int { return len(s.Bars) }

// HasVolume reports whether any bar in the series carries volume.
// Volume-based filters are skipped or fail closed when this is false.
func (s *Series) HasVolume() bool { return s.hasVolume }

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
