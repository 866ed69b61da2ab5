package pattern

import "github.com/quantrail/breakout/market"

// detectHTF finds a high-tight flag: a tight consolidation immediately
// after an explosive advance. pre holds the PreRunBars bars preceding the
// detection window; the advance over pre must return at least PreRunReturn
// (1.0 = +100%). The flag itself must have a range percentage inside
// [5%, RangePctMax] and an ATR percentile below its ceiling.
func detectHTF(pre, window []market.Bar, p *Profile, env Env) *Candidate {
	if len(pre) < 2 {
		return nil
	}

	base := pre[0].Close
	if base <= 0 {
		return nil
	}
	runReturn := pre[len(pre)-1].Close/base - 1
	if runReturn < p.PreRunReturn {
		return nil
	}

	rp := rangePct(window)
	if rp < 0.05 || rp > p.RangePctMax {
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
		Quality:    clamp01(runReturn - rp),
		Hint:       Long,
		Shape:      "high_tight_flag",
	}
}
