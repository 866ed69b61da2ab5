// Package journal persists closed breakout trades and the equity curve,
// either to SQLite or to CSV files.
package journal

import (
	"time"

	"github.com/quantrail/breakout/trade"
)

// TradeRecord is the persisted form of a closed trade.
type TradeRecord struct {
	TradeID      string
	Symbol       string
	Profile      string
	Pattern      string
	Direction    string
	Units        float64
	EntryPrice   float64
	ExitPrice    float64
	OpenTime     time.Time
	CloseTime    time.Time
	RealizedPL   float64
	Reason       string
	CapitalAfter float64
}

// EquitySnapshot records capital after each trade closure.
type EquitySnapshot struct {
	Time    time.Time
	Capital float64
}

// FromClosedTrade converts an engine trade record for journaling.
func FromClosedTrade(symbol string, t trade.ClosedTrade) TradeRecord {
	return TradeRecord{
		TradeID:      t.ID,
		Symbol:       symbol,
		Profile:      t.ProfileName,
		Pattern:      t.PatternType,
		Direction:    t.Dir.String(),
		Units:        t.Units,
		EntryPrice:   t.Entry,
		ExitPrice:    t.Exit,
		OpenTime:     t.EntryTime,
		CloseTime:    t.ExitTime,
		RealizedPL:   t.PnL,
		Reason:       string(t.Reason),
		CapitalAfter: t.CapitalAfter,
	}
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
