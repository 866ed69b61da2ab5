package indicators

// PercentileRank returns the percentage of history values that are at or
// below v, in [0, 100]. An empty history returns 100 so that percentile
// ceilings fail closed while data is still warming up.
func PercentileRank(history []float64, v float64) float64 {
	if len(history) == 0 {
		return 100
	}
	below := 0
	for _, h := range history {
		if h <= v {
			below++
		}
	}
	return 100 * float64(below) / float64(len(history))
}
