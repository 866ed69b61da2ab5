// Package market holds the base price data types shared by every other
// package: bars, ordered bar series, and CSV loading.
package market

import "time"

// Bar is a single OHLC(V) price bar. Bars are immutable once loaded;
// Volume may be zero for feeds that do not supply it.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Range returns the bar's high-low span.
func (b Bar) Range() float64 {
	return b.High - b.Low
}
