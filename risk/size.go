// Package risk converts a signal's stop distance into a position size
// bounded by a fixed fractional-risk budget and a notional cap.
package risk

import "math"

type Inputs struct {
	Entry   float64
	Stop    float64
	Capital float64

	// RiskPercent is in percent: 1.0 risks 1% of capital per trade.
	RiskPercent float64

	// MaxNotionalMultiplier caps units*entry at a multiple of capital.
	MaxNotionalMultiplier float64
}

type Result struct {
	Units      float64
	RiskAmount float64
}

// Size computes min(units by risk budget, units by notional cap), floored
// to whole units. It fails closed: a zero stop distance, a non-positive
// entry or a zero result all mean no position is opened.
func Size(in Inputs) Result {
	riskAmt := in.Capital * in.RiskPercent / 100

	stopDist := math.Abs(in.Entry - in.Stop)
	if stopDist <= 0 || in.Entry <= 0 || riskAmt <= 0 {
		return Result{RiskAmount: riskAmt}
	}

	unitsByRisk := math.Floor(riskAmt / stopDist)
	unitsByNotional := math.Floor(in.Capital * in.MaxNotionalMultiplier / in.Entry)

	units := math.Min(unitsByRisk, unitsByNotional)
	if units <= 0 {
		return Result{RiskAmount: riskAmt}
	}

	return Result{Units: units, RiskAmount: riskAmt}
}
