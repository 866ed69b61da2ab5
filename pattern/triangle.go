package pattern

import (
	"math"

	"github.com/quantrail/breakout/market"
)

// sideFit is the regression scaffolding shared by the triangle, flag and
// pennant detectors: one trendline per pivot side, both past the R² floor.
type sideFit struct {
	res Trendline // through pivot highs
	sup Trendline // through pivot lows

	// Slopes normalized by the window's mean close (fraction per bar).
	resSlope float64
	supSlope float64

	last int // last window index, where boundaries are evaluated

	// Span of the pivots both fits used. Anchoring the candidate on the
	// pivots rather than the window keeps its key stable while the window
	// slides past unchanged structure.
	firstPivot int
	lastPivot  int
}

func fitSides(window []market.Bar, p *Profile) (sideFit, bool) {
	pivots := FindPivots(window, p.PivotWindow, p.PivotWindow)
	highs := Highs(pivots)
	lows := Lows(pivots)
	if len(highs) < p.MinPivots || len(lows) < p.MinPivots {
		return sideFit{}, false
	}

	res := Fit(highs)
	sup := Fit(lows)
	if res.R2 < p.RSquaredMin || sup.R2 < p.RSquaredMin {
		return sideFit{}, false
	}

	norm := meanClose(window)
	if norm <= 0 {
		return sideFit{}, false
	}

	first, last := pivots[0].Index, pivots[len(pivots)-1].Index
	return sideFit{
		res:        res,
		sup:        sup,
		resSlope:   res.Slope / norm,
		supSlope:   sup.Slope / norm,
		last:       len(window) - 1,
		firstPivot: first,
		lastPivot:  last,
	}, true
}

func (f sideFit) candidate(hint Direction, shape string) *Candidate {
	sup := f.sup.ValueAt(f.last)
	res := f.res.ValueAt(f.last)
	if res <= sup {
		return nil
	}
	return &Candidate{
		StartIndex: f.firstPivot,
		EndIndex:   f.lastPivot,
		Support:    sup,
		Resistance: res,
		Quality:    (f.res.R2 + f.sup.R2) / 2,
		Hint:       hint,
		Shape:      shape,
	}
}

// detectTriangle classifies ascending, descending and symmetrical
// triangles from the two fitted sides:
//
//   - flat resistance + rising support    => ascending (hints Long)
//   - flat support + falling resistance   => descending (hints Short)
//   - converging opposite-sign slopes with magnitude ratio in [0.5, 2.0]
//     => symmetrical (direction-agnostic)
func detectTriangle(window []market.Bar, p *Profile) *Candidate {
	f, ok := fitSides(window, p)
	if !ok {
		return nil
	}

	tol := p.SlopeTolerance
	switch {
	case math.Abs(f.resSlope) <= tol && f.supSlope > tol:
		return f.candidate(Long, "ascending")
	case math.Abs(f.supSlope) <= tol && f.resSlope < -tol:
		return f.candidate(Short, "descending")
	case f.resSlope < -tol && f.supSlope > tol &&
		ratioIn(-f.resSlope, f.supSlope, 0.5, 2.0):
		return f.candidate(Both, "symmetrical")
	}
	return nil
}

// detectFlag looks for a parallel sloping channel: near-equal slopes within
// the flatness tolerance of each other and a slope ratio in [0.9, 1.05].
func detectFlag(window []market.Bar, p *Profile) *Candidate {
	f, ok := fitSides(window, p)
	if !ok {
		return nil
	}

	if math.Abs(f.resSlope-f.supSlope) > p.SlopeTolerance {
		return nil
	}
	// The channel may slope either way, so the ratio test must tolerate
	// two negative slopes.
	if f.supSlope == 0 {
		return nil
	}
	r := f.resSlope / f.supSlope
	if r < 0.9 || r > 1.05 {
		return nil
	}
	return f.candidate(Both, "flag")
}

// detectPennant looks for a small converging wedge: opposite-sign slopes of
// near-equal magnitude (ratio in [0.95, 1.05]), both below the steepness
// ceiling.
func detectPennant(window []market.Bar, p *Profile) *Candidate {
	f, ok := fitSides(window, p)
	if !ok {
		return nil
	}

	if f.resSlope >= 0 || f.supSlope <= 0 {
		return nil
	}
	if !ratioIn(-f.resSlope, f.supSlope, 0.95, 1.05) {
		return nil
	}
	if math.Abs(f.resSlope) > p.SteepnessMax || f.supSlope > p.SteepnessMax {
		return nil
	}
	return f.candidate(Both, "pennant")
}

// ratioIn reports whether a/b lies inside [lo, hi]. b must be positive.
func ratioIn(a, b, lo, hi float64) bool {
	if b <= 0 {
		return false
	}
	r := a / b
	return r >= lo && r <= hi
}
