package pattern

import "github.com/quantrail/breakout/market"

// contraction is one swing from a pivot high down to the next pivot low.
// Depth is the relative pullback (high-low)/high.
type contraction struct {
	highIdx int
	lowIdx  int
	high    float64
	low     float64
	depth   float64
}

// detectVCP walks the pivot sequence pairing each pivot high with the pivot
// low that follows it. A volatility contraction pattern needs at least
// ContractionSteps such swings whose depths shrink monotonically (each
// depth may exceed 90% of its predecessor's successor -- 10% slack), ending
// in a compressed window: range percentage and ATR percentile both below
// their ceilings.
//
// Resistance is the highest contraction high. Support is the highest
// contraction low, not the global minimum: VCP support ratchets upward.
func detectVCP(window []market.Bar, p *Profile, env Env) *Candidate {
	pivots := FindPivots(window, p.PivotWindow, p.PivotWindow)

	var cs []contraction
	for i := 0; i < len(pivots); i++ {
		if pivots[i].Kind != PivotHigh {
			continue
		}
		for j := i + 1; j < len(pivots); j++ {
			if pivots[j].Kind != PivotLow {
				continue
			}
			h, l := pivots[i].Price, pivots[j].Price
			if h > 0 && h > l {
				cs = append(cs, contraction{
					highIdx: pivots[i].Index,
					lowIdx:  pivots[j].Index,
					high:    h,
					low:     l,
					depth:   (h - l) / h,
				})
			}
			break
		}
	}

	if len(cs) < p.ContractionSteps {
		return nil
	}
	cs = cs[len(cs)-p.ContractionSteps:]

	for i := 0; i+1 < len(cs); i++ {
		if cs[i].depth < 0.9*cs[i+1].depth {
			return nil
		}
	}

	first, last := cs[0].depth, cs[len(cs)-1].depth
	if first <= 0 || last >= first {
		// No net contraction.
		return nil
	}

	if rangePct(window) > p.RangePctMax {
		return nil
	}
	if env.ATRPercentile > p.ATRPercentileMax {
		return nil
	}

	resistance, support := cs[0].high, cs[0].low
	for _, c := range cs[1:] {
		if c.high > resistance {
			resistance = c.high
		}
		if c.low > support {
			support = c.low
		}
	}
	if resistance <= support {
		return nil
	}

	return &Candidate{
		StartIndex: cs[0].highIdx,
		EndIndex:   cs[len(cs)-1].lowIdx,
		Support:    support,
		Resistance: resistance,
		Quality:    clamp01((first - last) / first),
		Hint:       Long,
		Shape:      "vcp",
	}
}
