// Package trade owns the life of a single open position: the stepped
// trailing-stop ratchet, stop/target/exogenous exit detection, and the
// closed-trade record that updates capital.
package trade

import (
	"time"

	"github.com/quantrail/breakout/pattern"
)

// ExitReason says why a position was closed.
type ExitReason string

const (
	ExitStopLoss   ExitReason = "StopLoss"
	ExitTakeProfit ExitReason = "TakeProfit"
	ExitTime       ExitReason = "TimeExit"
	ExitRegime     ExitReason = "RegimeExit"
	ExitEndOfData  ExitReason = "EndOfData"
)

// Position is the one open trade. Stop is the only mutable field and it
// only ever tightens in the position's favor; OriginalStop is frozen at
// entry for R-multiple computation.
type Position struct {
	Dir          pattern.Direction
	Entry        float64
	Stop         float64
	Target       float64
	OriginalStop float64
	Units        float64
	EntryTime    time.Time

	ProfileName string
	PatternType string

	// Key is the (profile, window) identity of the pattern instance this
	// position was opened against.
	Key string
}

// Risk is the frozen entry-to-original-stop distance.
func (p *Position) Risk() float64 {
	r := p.Entry - p.OriginalStop
	if r < 0 {
		r = -r
	}
	return r
}

// RMultiple expresses the favorable move to price as a multiple of the
// original risk.
func (p *Position) RMultiple(price float64) float64 {
	risk := p.Risk()
	if risk == 0 {
		return 0
	}
	move := price - p.Entry
	if p.Dir == pattern.Short {
		move = -move
	}
	return move / risk
}

// ClosedTrade is the immutable record a terminal state produces.
type ClosedTrade struct {
	ID        string
	Dir       pattern.Direction
	Entry     float64
	Exit      float64
	Units     float64
	EntryTime time.Time
	ExitTime  time.Time

	// PnL is realized, net of commission and slippage.
	PnL    float64
	Reason ExitReason

	ProfileName  string
	PatternType  string
	CapitalAfter float64
}
