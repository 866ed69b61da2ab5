package trade

import (
	"time"

	"github.com/quantrail/breakout/market"
	"github.com/quantrail/breakout/pattern"
	"github.com/quantrail/breakout/pkg/id"
)

// CheckExit models stop/target hits within a bar. If both could trigger
// inside the same bar's range, the stop takes priority -- the conservative
// assumption, since intra-bar ordering is unknowable from OHLC data.
func CheckExit(p *Position, bar market.Bar) (exitPx float64, reason ExitReason, hit bool) {
	if p.Dir == pattern.Long {
		stopHit := bar.Low <= p.Stop
		takeHit := p.Target > 0 && bar.High >= p.Target
		if stopHit {
			return p.Stop, ExitStopLoss, true
		}
		if takeHit {
			return p.Target, ExitTakeProfit, true
		}
		return 0, "", false
	}

	stopHit := bar.High >= p.Stop
	takeHit := p.Target > 0 && bar.Low <= p.Target
	if stopHit {
		return p.Stop, ExitStopLoss, true
	}
	if takeHit {
		return p.Target, ExitTakeProfit, true
	}
	return 0, "", false
}

// Costs holds the per-unit frictions charged once on trade closure.
type Costs struct {
	CommissionPerUnit float64
	SlippagePerUnit   float64
}

// Close produces the terminal ClosedTrade record. capitalBefore is the
// capital going into the close; the record carries the capital after
// realized P&L net of commission and slippage.
func Close(p *Position, exitPx float64, t time.Time, reason ExitReason, costs Costs, capitalBefore float64) ClosedTrade {
	move := exitPx - p.Entry
	if p.Dir == pattern.Short {
		move = -move
	}
	pnl := move*p.Units - p.Units*(costs.CommissionPerUnit+costs.SlippagePerUnit)

	return ClosedTrade{
		ID:           id.New(),
		Dir:          p.Dir,
		Entry:        p.Entry,
		Exit:         exitPx,
		Units:        p.Units,
		EntryTime:    p.EntryTime,
		ExitTime:     t,
		PnL:          pnl,
		Reason:       reason,
		ProfileName:  p.ProfileName,
		PatternType:  p.PatternType,
		CapitalAfter: capitalBefore + pnl,
	}
}
