package breakout

import (
	"math"
	"time"

	"github.com/quantrail/breakout/market"
	"github.com/quantrail/breakout/pattern"
)

// minTick is the smallest stop distance the fallback stop placement will
// produce when percentage buffers degenerate.
const minTick = 0.01

// Signal is a fully constructed breakout trade: direction, entry, stop and
// target. It is consumed by the orchestrator on the bar it was produced
// and never persisted.
type Signal struct {
	Direction pattern.Direction
	Entry     float64
	Stop      float64
	Target    float64

	Profile   *pattern.Profile
	Candidate *pattern.Candidate
	Quality   float64
	Time      time.Time
}

// Env is the per-bar market context the orchestrator assembles for the
// evaluator: indicator values, regime bias and relative-strength state.
type Env struct {
	ATR     float64
	FastEMA float64 // symbol momentum EMAs, 0 while warming up
	SlowEMA float64

	Bias pattern.Direction

	VolumeTracked bool
	AvgVolume     float64 // 0 when the averaging window does not exist yet

	HaveRS      bool
	RSNewHigh   bool
	RSDeclining bool
}

// Evaluator applies the strategy-level universe settings. Everything else
// comes from the candidate's profile.
type Evaluator struct {
	MinPrice         float64
	RequireRSNewHigh bool
}

// Evaluate tests the current bar against a candidate's boundaries and
// returns a signal when every filter passes and exactly one direction
// breaks out. It mutates nothing: re-running it on the same inputs
// produces the same signal.
func (e Evaluator) Evaluate(c *pattern.Candidate, bar market.Bar, env Env) *Signal {
	p := c.Profile

	// 1. Universe filters.
	if bar.Close < e.MinPrice {
		return nil
	}
	if env.VolumeTracked && env.AvgVolume <= 0 {
		return nil
	}
	if e.RequireRSNewHigh && env.HaveRS && !env.RSNewHigh {
		return nil
	}

	// 2. Direction admissibility: profile x pattern hint x regime bias.
	longOK := p.Direction.Allows(pattern.Long) && c.Hint.Allows(pattern.Long)
	shortOK := p.Direction.Allows(pattern.Short) && c.Hint.Allows(pattern.Short)
	if !p.AllowCounterTrend {
		longOK = longOK && env.Bias.Allows(pattern.Long)
		shortOK = shortOK && env.Bias.Allows(pattern.Short)
	}
	if !longOK && !shortOK {
		return nil
	}

	// 3. Confirmation filters.
	if p.TimeWindow.Enabled() && !p.TimeWindow.Contains(bar.Time.Hour()) {
		return nil
	}
	if p.VolumeMultiplier > 0 && env.VolumeTracked {
		if bar.Volume < env.AvgVolume*p.VolumeMultiplier {
			return nil
		}
	}
	if env.HaveRS && env.RSDeclining {
		return nil
	}

	// 4. Breakout test. Exactly one side can trigger because
	// Resistance > Support and buffers push the levels further apart.
	buf := p.BreakoutBufferPct
	upLevel := c.Resistance * (1 + buf)
	downLevel := c.Support * (1 - buf)

	var dir pattern.Direction
	switch {
	case longOK && bar.Close >= upLevel:
		dir = pattern.Long
	case shortOK && bar.Close <= downLevel:
		dir = pattern.Short
	default:
		return nil
	}

	if p.MomentumRequired && !momentumOK(dir, bar.Close, env) {
		return nil
	}

	// 5. Trade construction.
	entry, stop, target := construct(dir, c, env.ATR)
	return &Signal{
		Direction: dir,
		Entry:     entry,
		Stop:      stop,
		Target:    target,
		Profile:   p,
		Candidate: c,
		Quality:   c.Quality,
		Time:      bar.Time,
	}
}

// momentumOK requires the close at or beyond the faster EMAs in the trade
// direction. Unwarmed EMAs (zero) do not block.
func momentumOK(dir pattern.Direction, close float64, env Env) bool {
	if dir == pattern.Long {
		if env.FastEMA > 0 && close < env.FastEMA {
			return false
		}
		if env.SlowEMA > 0 && close < env.SlowEMA {
			return false
		}
		return true
	}
	if env.FastEMA > 0 && close > env.FastEMA {
		return false
	}
	if env.SlowEMA > 0 && close > env.SlowEMA {
		return false
	}
	return true
}

// construct builds entry, stop and target for the triggered direction.
// Entry is the broken boundary adjusted by the buffer. The initial stop is
// the opposite boundary adjusted by a half-buffer, falling back to a
// buffer-width (or one-tick) offset from entry when that would land on the
// wrong side. The target is whichever of the risk/reward distance and the
// ATR multiple gives the larger profit objective.
func construct(dir pattern.Direction, c *pattern.Candidate, atr float64) (entry, stop, target float64) {
	p := c.Profile
	buf := p.BreakoutBufferPct

	if dir == pattern.Long {
		entry = c.Resistance * (1 + buf)
		stop = c.Support * (1 - buf/2)
		if stop >= entry {
			stop = entry - math.Max(buf*entry, minTick)
		}
		risk := entry - stop
		target = math.Max(entry+risk*p.RiskRewardRatio, entry+atr*p.ATRMultiple)
		return entry, stop, target
	}

	entry = c.Support * (1 - buf)
	stop = c.Resistance * (1 + buf/2)
	if stop <= entry {
		stop = entry + math.Max(buf*entry, minTick)
	}
	risk := stop - entry
	target = math.Min(entry-risk*p.RiskRewardRatio, entry-atr*p.ATRMultiple)
	return entry, stop, target
}
