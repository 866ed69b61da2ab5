package indicators

import (
	"fmt"
	"math"
)

// BollingerWidth returns the width of the Bollinger bands over the last
// period closes, expressed as a fraction of the middle band:
//
//	(upper - lower) / middle = 2*k*stddev / sma
//
// A small width marks a volatility squeeze.
func BollingerWidth(closes []float64, period int, k float64) (float64, error) {
	if period <= 1 {
		return 0, fmt.Errorf("period must be > 1, got %d", period)
	}
	if len(closes) < period {
		return 0, fmt.Errorf("not enough values: need %d, got %d", period, len(closes))
	}

	window := closes[len(closes)-period:]

	sum := 0.0
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(period)
	if mean == 0 {
		return 0, fmt.Errorf("zero mean close")
	}

	varSum := 0.0
	for _, v := range window {
		d := v - mean
		varSum += d * d
	}
	std := math.Sqrt(varSum / float64(period))

	return 2 * k * std / mean, nil
}
