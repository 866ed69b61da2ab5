package backtest

import (
	"time"

	"github.com/quantrail/breakout/trade"
)

// Result summarizes one backtest run.
type Result struct {
	InitialCapital float64
	EndingCapital  float64

	Trades []trade.ClosedTrade
	Wins   int
	Losses int

	WinRate      float64 // wins / trades, 0 with no trades
	ProfitFactor float64 // gross profit / gross loss, 0 when no losses and no wins
	MaxDrawdown  float64 // worst peak-to-trough capital drop, as a fraction

	Start time.Time // first trade entry
	End   time.Time // last trade exit
}

func summarize(initial, ending float64, trades []trade.ClosedTrade) Result {
	r := Result{
		InitialCapital: initial,
		EndingCapital:  ending,
		Trades:         trades,
	}

	grossProfit := 0.0
	grossLoss := 0.0

	peak := initial
	capital := initial

	for _, t := range trades {
		if t.PnL > 0 {
			r.Wins++
			grossProfit += t.PnL
		} else if t.PnL < 0 {
			r.Losses++
			grossLoss += -t.PnL
		}

		capital = t.CapitalAfter
		if capital > peak {
			peak = capital
		}
		if peak > 0 {
			dd := (peak - capital) / peak
			if dd > r.MaxDrawdown {
				r.MaxDrawdown = dd
			}
		}

		if r.Start.IsZero() || t.EntryTime.Before(r.Start) {
			r.Start = t.EntryTime
		}
		if t.ExitTime.After(r.End) {
			r.End = t.ExitTime
		}
	}

	if n := len(trades); n > 0 {
		r.WinRate = float64(r.Wins) / float64(n)
	}
	if grossLoss > 0 {
		r.ProfitFactor = grossProfit / grossLoss
	} else if grossProfit > 0 {
		r.ProfitFactor = grossProfit
	}

	return r
}
