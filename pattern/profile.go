package pattern

import "fmt"

// Archetype names a pattern family. The classifier dispatches on it
// exhaustively; adding a value means adding a detector.
type Archetype uint8

const (
	Triangle Archetype = iota + 1
	Flag
	Pennant
	VCP
	HTF
	FlatBase
)

var archetypeNames = map[Archetype]string{
	Triangle: "triangle",
	Flag:     "flag",
	Pennant:  "pennant",
	VCP:      "vcp",
	HTF:      "high_tight_flag",
	FlatBase: "flat_base",
}

func (a Archetype) String() string {
	if s, ok := archetypeNames[a]; ok {
		return s
	}
	return fmt.Sprintf("archetype(%d)", uint8(a))
}

// ParseArchetype maps a config string to an Archetype.
func ParseArchetype(s string) (Archetype, error) {
	for a, name := range archetypeNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

// Direction is a trade direction constraint or hint.
type Direction uint8

const (
	Both Direction = iota
	Long
	Short
)

func (d Direction) String() string {
	switch d {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "both"
	}
}

// ParseDirection maps a config string to a Direction. Empty means Both.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "both":
		return Both, nil
	case "long":
		return Long, nil
	case "short":
		return Short, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Allows reports whether direction x is admissible under constraint d.
func (d Direction) Allows(x Direction) bool {
	return d == Both || d == x
}

// TimeWindow restricts signals to a span of hours [Start, End) in the
// bar's timezone. A zero window means no restriction.
type TimeWindow struct {
	StartHour int
	EndHour   int
}

func (w TimeWindow) Enabled() bool { return w.StartHour != 0 || w.EndHour != 0 }

// Contains reports whether hour falls inside the window.
func (w TimeWindow) Contains(hour int) bool {
	if !w.Enabled() {
		return true
	}
	if w.StartHour <= w.EndHour {
		return hour >= w.StartHour && hour < w.EndHour
	}
	// Overnight window, e.g. 22 -> 4.
	return hour >= w.StartHour || hour < w.EndHour
}

// Profile is the immutable configuration of one pattern detector instance,
// created at strategy construction time. Zero values fall back to the
// archetype defaults applied by Normalize.
type Profile struct {
	Name      string
	Archetype Archetype

	// Direction bias this profile is willing to trade.
	Direction Direction

	// Window geometry.
	Lookback    int // bars in the detection window
	MinPivots   int // minimum pivots per side (regression archetypes)
	PivotWindow int // symmetric look-around for pivot detection

	// Regression quality gates.
	RSquaredMin    float64
	SlopeTolerance float64 // max normalized |slope| still considered flat
	SteepnessMax   float64 // max normalized |slope| for pennant legs

	// Volatility/compression ceilings.
	ATRPercentileMax float64 // latest ATR percentile vs its own history
	RangePctMax      float64 // window (high-low)/high ceiling

	// Breakout construction.
	BreakoutBufferPct float64 // e.g. 0.002 = 0.2%
	VolumeMultiplier  float64 // 0 disables the volume confirmation
	RiskRewardRatio   float64
	ATRMultiple       float64

	// Session and behavior flags.
	TimeWindow        TimeWindow
	MomentumRequired  bool
	AllowCounterTrend bool

	// VCP: number of successively shallower contractions required.
	ContractionSteps int

	// HTF: explosive advance immediately preceding the flag.
	PreRunBars   int
	PreRunReturn float64 // e.g. 1.0 = +100%
}

// Normalize fills zero-valued fields with the archetype defaults and
// returns an error for settings the detectors cannot work with.
func (p *Profile) Normalize() error {
	if p.Name == "" {
		p.Name = p.Archetype.String()
	}
	if _, ok := archetypeNames[p.Archetype]; !ok {
		return fmt.Errorf("profile %s: unknown archetype %d", p.Name, p.Archetype)
	}

	if p.Lookback == 0 {
		switch p.Archetype {
		case Flag:
			p.Lookback = 40
		case Pennant:
			p.Lookback = 20
		default:
			p.Lookback = 80
		}
	}
	if p.MinPivots == 0 {
		p.MinPivots = 3
	}
	if p.PivotWindow == 0 {
		p.PivotWindow = 3
	}
	if p.RSquaredMin == 0 {
		p.RSquaredMin = 0.6
	}
	if p.SlopeTolerance == 0 {
		p.SlopeTolerance = 0.0005
	}
	if p.SteepnessMax == 0 {
		p.SteepnessMax = 0.01
	}
	if p.ATRPercentileMax == 0 {
		p.ATRPercentileMax = 60
	}
	if p.RangePctMax == 0 {
		p.RangePctMax = 0.15
	}
	if p.BreakoutBufferPct == 0 {
		p.BreakoutBufferPct = 0.002
	}
	if p.RiskRewardRatio == 0 {
		p.RiskRewardRatio = 2.0
	}
	if p.ATRMultiple == 0 {
		p.ATRMultiple = 2.0
	}
	if p.Archetype == VCP && p.ContractionSteps == 0 {
		p.ContractionSteps = 3
	}
	if p.Archetype == HTF {
		if p.PreRunBars == 0 {
			p.PreRunBars = 40
		}
		if p.PreRunReturn == 0 {
			p.PreRunReturn = 1.0
		}
	}

	if p.Lookback < 2*p.PivotWindow+1 {
		return fmt.Errorf("profile %s: lookback %d too small for pivot window %d",
			p.Name, p.Lookback, p.PivotWindow)
	}
	if p.MinPivots < 2 {
		return fmt.Errorf("profile %s: min pivots must be >= 2, got %d", p.Name, p.MinPivots)
	}

	return nil
}
