package trade

import "github.com/quantrail/breakout/pattern"

// tokenProfitR is the fraction of original risk locked in when a trade
// first reaches 1.0R.
const tokenProfitR = 0.1

// NextStop is the pure stop-ratchet rule: given the position and the bar's
// favorable price extreme, it returns the stop that should now be in
// force. The caller performs the assignment.
//
// The ladder, in R-multiples of the original risk:
//
//	< 1.0R  stop untouched
//	>= 1.0R  entry +/- 0.1R (lock a token profit)
//	>= 1.5R  lock 0.75R
//	>= 2.0R  lock 1.5R
//	>= 2.5R  trail at price -/+ 0.5R
//
// The returned stop is never less favorable than the current one: for a
// Long position stops are non-decreasing, for a Short non-increasing.
func NextStop(p *Position, price float64) float64 {
	risk := p.Risk()
	if risk == 0 {
		return p.Stop
	}

	r := p.RMultiple(price)

	var lockR float64
	trailing := false
	switch {
	case r < 1.0:
		return p.Stop
	case r < 1.5:
		lockR = tokenProfitR
	case r < 2.0:
		lockR = 0.75
	case r < 2.5:
		lockR = 1.5
	default:
		trailing = true
	}

	var next float64
	if p.Dir == pattern.Long {
		if trailing {
			next = price - 0.5*risk
		} else {
			next = p.Entry + lockR*risk
		}
		if next > p.Stop {
			return next
		}
		return p.Stop
	}

	if trailing {
		next = price + 0.5*risk
	} else {
		next = p.Entry - lockR*risk
	}
	if next < p.Stop {
		return next
	}
	return p.Stop
}
