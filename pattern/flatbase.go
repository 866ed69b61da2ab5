package pattern

import "github.com/quantrail/breakout/market"

// detectFlatBase accepts any window whose range percentage is at or below
// the ceiling while the latest ATR sits at or below its trailing
// percentile ceiling. The boundary pair is simply the window extremes.
func detectFlatBase(window []market.Bar, p *Profile, env Env) *Candidate {
	rp := rangePct(window)
	if rp > p.RangePctMax {
		return nil
	}
	if env.ATRPercentile > p.ATRPercentileMax {
		return nil
	}

	hi, lo := windowExtremes(window)
	if hi <= lo {
		return nil
	}

	return &Candidate{
		StartIndex: 0,
		EndIndex:   len(window) - 1,
		Support:    lo,
		Resistance: hi,
		Quality:    clamp01(1 - rp),
		Hint:       Both,
		Shape:      "flat_base",
	}
}
