package indicators

import (
	"fmt"

	"github.com/quantrail/breakout/market"
)

// EMA is a streaming Exponential Moving Average over bar closes.
type EMA struct {
	period int
	alpha  float64

	seen  int
	value float64
}

func NewEMA(period int) *EMA {
	if period <= 0 {
		panic("EMA period must be > 0")
	}
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

func (e *EMA) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }
func (e *EMA) Warmup() int  { return e.period }
func (e *EMA) Ready() bool  { return e.seen >= e.period }

func (e *EMA) Reset() {
	e.seen = 0
	e.value = 0
}

func (e *EMA) Update(b market.Bar) {
	e.seen++
	if e.seen == 1 {
		// Seed with the first close (simple, deterministic).
		e.value = b.Close
		return
	}
	e.value = e.alpha*b.Close + (1.0-e.alpha)*e.value
}

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.value
}

// EMAFunc computes the EMA of the last value in a close series,
// seeded with the SMA of the first period values.
func EMAFunc(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period {
		return 0, fmt.Errorf("not enough values: need %d, got %d", period, len(closes))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	ema := sum / float64(period)

	alpha := 2.0 / float64(period+1)
	for i := period; i < len(closes); i++ {
		ema = alpha*closes[i] + (1.0-alpha)*ema
	}
	return ema, nil
}
