package indicators

import (
	"fmt"

	"github.com/quantrail/breakout/market"
)

// ADX implements Wilder's Average Directional Index (trend strength).
// Usage:
//
//	adx := indicators.NewADX(14)
//	adx.Update(bar)
//	if adx.Ready() && adx.Value() >= 20 { ... }
type ADX struct {
	period int

	prev    market.Bar
	hasPrev bool

	// Wilder-smoothed values after warmup.
	trN  float64
	pdmN float64
	mdmN float64

	adx   float64
	dxSum float64

	count int
	ready bool
}

func NewADX(period int) *ADX {
	if period <= 0 {
		panic("ADX period must be > 0")
	}
	return &ADX{period: period}
}

func (a *ADX) Name() string { return fmt.Sprintf("ADX(%d)", a.period) }

// Warmup: period bars to seed smoothed TR/DM, then period DX values
// to seed ADX, plus the initial prev bar.
func (a *ADX) Warmup() int { return 2*a.period + 1 }

func (a *ADX) Ready() bool { return a.ready }

func (a *ADX) Reset() {
	*a = ADX{period: a.period}
}

func (a *ADX) Update(b market.Bar) {
	if !a.hasPrev {
		a.prev = b
		a.hasPrev = true
		a.count = 1
		return
	}

	upMove := b.High - a.prev.High
	downMove := a.prev.Low - b.Low

	var pdm, mdm float64
	if upMove > downMove && upMove > 0 {
		pdm = upMove
	}
	if downMove > upMove && downMove > 0 {
		mdm = downMove
	}

	tr := trueRange(b, a.prev)

	a.prev = b
	a.count++

	p := float64(a.period)

	// Phase A: accumulate initial TR/DM averages.
	if a.count <= a.period+1 {
		a.trN += tr
		a.pdmN += pdm
		a.mdmN += mdm

		if a.count == a.period+1 {
			a.trN /= p
			a.pdmN /= p
			a.mdmN /= p
		}
		return
	}

	// Wilder smoothing of TR/DM.
	a.trN = (a.trN*(p-1) + tr) / p
	a.pdmN = (a.pdmN*(p-1) + pdm) / p
	a.mdmN = (a.mdmN*(p-1) + mdm) / p

	dx := a.dx()

	// Phase B: accumulate DX values to seed ADX.
	if !a.ready {
		a.dxSum += dx
		if a.count >= 2*a.period+1 {
			a.adx = a.dxSum / p
			a.ready = true
		}
		return
	}

	a.adx = (a.adx*(p-1) + dx) / p
}

func (a *ADX) dx() float64 {
	if a.trN == 0 {
		return 0
	}
	pdi := 100 * a.pdmN / a.trN
	mdi := 100 * a.mdmN / a.trN
	if pdi+mdi == 0 {
		return 0
	}
	diff := pdi - mdi
	if diff < 0 {
		diff = -diff
	}
	return 100 * diff / (pdi + mdi)
}

func (a *ADX) Value() float64 {
	if !a.ready {
		return 0
	}
	return a.adx
}
