// Package pattern detects geometric consolidation patterns (triangles,
// flags, pennants, volatility contractions, high-tight flags, flat bases)
// in a bar series and reports their support/resistance boundaries.
package pattern

import "github.com/quantrail/breakout/market"

// PivotKind marks a pivot as a local high or local low.
type PivotKind uint8

const (
	PivotHigh PivotKind = iota + 1
	PivotLow
)

// PivotPoint is a local extreme bar within a symmetric look-around window.
// Index is relative to the slice FindPivots was given.
type PivotPoint struct {
	Index int
	Price float64
	Kind  PivotKind
}

// FindPivots scans bars and flags pivot highs and lows. A bar at index i is
// a pivot high iff its high is the strict maximum over [i-left, i+right]
// inclusive; pivot lows use the strict minimum. Bars within left of the
// start or right of the end cannot be evaluated and are never flagged.
//
// Strict comparison doubles as the tie policy: when two bars share the
// extreme price neither is a strict extreme, so ties flag nothing.
func FindPivots(bars []market.Bar, left, right int) []PivotPoint {
	if left < 0 || right < 0 || len(bars) < left+right+1 {
		return nil
	}

	var out []PivotPoint
	for i := left; i < len(bars)-right; i++ {
		hi, lo := true, true
		for j := i - left; j <= i+right; j++ {
			if j == i {
				continue
			}
			if bars[j].High >= bars[i].High {
				hi = false
			}
			if bars[j].Low <= bars[i].Low {
				lo = false
			}
			if !hi && !lo {
				break
			}
		}
		if hi {
			out = append(out, PivotPoint{Index: i, Price: bars[i].High, Kind: PivotHigh})
		}
		if lo {
			out = append(out, PivotPoint{Index: i, Price: bars[i].Low, Kind: PivotLow})
		}
	}
	return out
}

// Highs filters pivot highs out of a pivot list, preserving order.
func Highs(pivots []PivotPoint) []PivotPoint {
	return filter(pivots, PivotHigh)
}

// Lows filters pivot lows out of a pivot list, preserving order.
func Lows(pivots []PivotPoint) []PivotPoint {
	return filter(pivots, PivotLow)
}

func filter(pivots []PivotPoint, kind PivotKind) []PivotPoint {
	var out []PivotPoint
	for _, p := range pivots {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
