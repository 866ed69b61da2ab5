package pattern

import "github.com/quantrail/breakout/market"

// Env carries the indicator context the orchestrator computes per bar and
// feeds back into detection: the latest ATR and its percentile rank against
// the symbol's own trailing ATR history.
type Env struct {
	ATR           float64
	ATRPercentile float64
}

// Detect runs the profile's detector over the window of p.Lookback bars
// ending just before bar index end (the current bar is never part of its
// own pattern). It returns nil when no pattern is present; that is the
// ordinary result, not an error.
func Detect(series []market.Bar, end int, p *Profile, env Env) *Candidate {
	if p.Lookback <= 0 || end < p.Lookback || end > len(series) {
		return nil
	}

	offset := end - p.Lookback
	window := series[offset:end]

	var c *Candidate
	switch p.Archetype {
	case Triangle:
		c = detectTriangle(window, p)
	case Flag:
		c = detectFlag(window, p)
	case Pennant:
		c = detectPennant(window, p)
	case VCP:
		c = detectVCP(window, p, env)
	case HTF:
		if offset < p.PreRunBars {
			return nil
		}
		c = detectHTF(series[offset-p.PreRunBars:offset], window, p, env)
	case FlatBase:
		c = detectFlatBase(window, p, env)
	}

	if c == nil {
		return nil
	}

	c.Profile = p
	c.StartIndex += offset
	c.EndIndex += offset
	return c
}

// meanClose is the normalization base for slope comparisons, so slope
// tolerances are comparable across price levels.
func meanClose(window []market.Bar) float64 {
	sum := 0.0
	for _, b := range window {
		sum += b.Close
	}
	return sum / float64(len(window))
}

// rangePct is the window's high-low span as a fraction of its high.
func rangePct(window []market.Bar) float64 {
	hi, lo := windowExtremes(window)
	if hi <= 0 {
		return 0
	}
	return (hi - lo) / hi
}

func windowExtremes(window []market.Bar) (hi, lo float64) {
	hi, lo = window[0].High, window[0].Low
	for _, b := range window[1:] {
		if b.High > hi {
			hi = b.High
		}
		if b.Low < lo {
			lo = b.Low
		}
	}
	return hi, lo
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
