// Package backtest drives the pattern pipeline bar-by-bar over a price
// series: detection, breakout evaluation, sizing, and trade lifecycle
// management, producing a trade ledger and summary metrics.
package backtest

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quantrail/breakout/breakout"
	"github.com/quantrail/breakout/indicators"
	"github.com/quantrail/breakout/journal"
	"github.com/quantrail/breakout/market"
	"github.com/quantrail/breakout/pattern"
	"github.com/quantrail/breakout/risk"
	"github.com/quantrail/breakout/trade"
)

// Config holds the strategy-level (non-profile) options.
type Config struct {
	InitialCapital        float64
	RiskPercent           float64 // percent: 1.0 risks 1% per trade
	MaxNotionalMultiplier float64
	CommissionPerUnit     float64
	SlippagePerUnit       float64

	MarketBiasMode   breakout.BiasMode
	MinPrice         float64
	RequireRSNewHigh bool

	// Indicator periods feeding detection and filters.
	ATRPeriod      int // default 14
	ATRHistory     int // trailing ATR values kept for percentile rank, default 100
	FastEMAPeriod  int // symbol momentum, default 20
	SlowEMAPeriod  int // symbol momentum, default 50
	BenchFast      int // benchmark regime EMA, default 20
	BenchSlow      int // benchmark regime EMA, default 50
	VolumePeriod   int // trailing average volume window, default 20
	RSWindow       int // relative-strength rolling-high window, default 60
	CloseAtEnd     bool
}

func (c *Config) setDefaults() {
	if c.InitialCapital == 0 {
		c.InitialCapital = 100_000
	}
	if c.RiskPercent == 0 {
		c.RiskPercent = 1.0
	}
	if c.MaxNotionalMultiplier == 0 {
		c.MaxNotionalMultiplier = 4.0
	}
	if c.MarketBiasMode == "" {
		c.MarketBiasMode = breakout.BiasAuto
	}
	if c.ATRPeriod == 0 {
		c.ATRPeriod = 14
	}
	if c.ATRHistory == 0 {
		c.ATRHistory = 100
	}
	if c.FastEMAPeriod == 0 {
		c.FastEMAPeriod = 20
	}
	if c.SlowEMAPeriod == 0 {
		c.SlowEMAPeriod = 50
	}
	if c.BenchFast == 0 {
		c.BenchFast = 20
	}
	if c.BenchSlow == 0 {
		c.BenchSlow = 50
	}
	if c.VolumePeriod == 0 {
		c.VolumePeriod = 20
	}
	if c.RSWindow == 0 {
		c.RSWindow = 60
	}
}

// Engine owns all mutable backtest state: the single open position, the
// capital scalar, the visited-pattern set and the trade ledger. One Engine
// serves one run; independent runs want independent Engines.
type Engine struct {
	series    *market.Series
	benchmark *market.Series // optional, enables regime + relative strength
	profiles  []*pattern.Profile
	cfg       Config

	eval  breakout.Evaluator
	costs trade.Costs
	log   zerolog.Logger
	jrnl  journal.Journal

	capital float64
	pos     *trade.Position
	traded  map[string]bool
	trades  []trade.ClosedTrade

	byName map[string]*pattern.Profile

	// Streaming indicator state, updated once per bar after that bar has
	// been traded; detection therefore always sees prior values.
	atr      *indicators.ATR
	atrHist  []float64
	fastEMA  *indicators.EMA
	slowEMA  *indicators.EMA
	benchFst *indicators.EMA
	benchSlw *indicators.EMA
	rs       *breakout.RelStrength

	volRing []float64
	volSum  float64
}

// New validates inputs, normalizes the profiles and builds an engine.
// benchmark may be nil; when present it must be bar-aligned with the
// symbol series (same length, same cadence).
func New(series, benchmark *market.Series, profiles []*pattern.Profile, cfg Config) (*Engine, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("backtest: empty series")
	}
	if benchmark != nil && benchmark.Len() != series.Len() {
		return nil, fmt.Errorf("backtest: benchmark has %d bars, series has %d; must be aligned",
			benchmark.Len(), series.Len())
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("backtest: no pattern profiles")
	}

	cfg.setDefaults()

	byName := make(map[string]*pattern.Profile, len(profiles))
	for _, p := range profiles {
		if err := p.Normalize(); err != nil {
			return nil, err
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("backtest: duplicate profile name %q", p.Name)
		}
		byName[p.Name] = p
	}

	return &Engine{
		series:    series,
		benchmark: benchmark,
		profiles:  profiles,
		cfg:       cfg,
		eval: breakout.Evaluator{
			MinPrice:         cfg.MinPrice,
			RequireRSNewHigh: cfg.RequireRSNewHigh,
		},
		costs: trade.Costs{
			CommissionPerUnit: cfg.CommissionPerUnit,
			SlippagePerUnit:   cfg.SlippagePerUnit,
		},
		log:      zerolog.Nop(),
		capital:  cfg.InitialCapital,
		traded:   make(map[string]bool),
		byName:   byName,
		atr:      indicators.NewATR(cfg.ATRPeriod),
		fastEMA:  indicators.NewEMA(cfg.FastEMAPeriod),
		slowEMA:  indicators.NewEMA(cfg.SlowEMAPeriod),
		benchFst: indicators.NewEMA(cfg.BenchFast),
		benchSlw: indicators.NewEMA(cfg.BenchSlow),
		rs:       breakout.NewRelStrength(cfg.RSWindow),
	}, nil
}

// SetLogger installs a logger; the default discards everything.
func (e *Engine) SetLogger(l zerolog.Logger) { e.log = l }

// SetJournal attaches a journal that receives every closed trade and the
// equity snapshot after it.
func (e *Engine) SetJournal(j journal.Journal) { e.jrnl = j }

// Capital returns the running capital; it changes only on trade closure.
func (e *Engine) Capital() float64 { return e.capital }

// Run executes the backtest over the whole series and returns the summary.
// Bars are processed strictly in order with no suspension points.
func (e *Engine) Run() (Result, error) {
	for i, bar := range e.series.Bars {
		var benchBar market.Bar
		if e.benchmark != nil {
			benchBar = e.benchmark.Bars[i]
			e.rs.Update(bar.Close, benchBar.Close)
		}

		bias := breakout.RegimeBias(e.cfg.MarketBiasMode, e.benchFst.Value(), e.benchSlw.Value())

		// Entries are only considered on bars that started flat: a bar
		// that closes a position never opens the next one.
		if e.pos != nil {
			e.manage(bar, bias)
		} else {
			e.tryEnter(i, bar, bias)
		}

		e.updateIndicators(bar, benchBar)
	}

	if e.pos != nil && e.cfg.CloseAtEnd {
		last := e.series.Bars[e.series.Len()-1]
		e.closePosition(last.Close, last, trade.ExitEndOfData)
	}

	return summarize(e.cfg.InitialCapital, e.capital, e.trades), nil
}

// manage runs the per-bar lifecycle for the open position: exogenous exits
// first, then stop/target hits, then the stop ratchet. A stop raised on
// this bar takes effect from the next bar, so the ratchet never interacts
// with the bar that produced it.
func (e *Engine) manage(bar market.Bar, bias pattern.Direction) {
	p := e.pos

	if prof, ok := e.byName[p.ProfileName]; ok && prof.TimeWindow.Enabled() {
		if !prof.TimeWindow.Contains(bar.Time.Hour()) {
			e.closePosition(bar.Close, bar, trade.ExitTime)
			return
		}
	}

	if e.cfg.MarketBiasMode == breakout.BiasAuto && bias != pattern.Both && bias != p.Dir {
		e.closePosition(bar.Close, bar, trade.ExitRegime)
		return
	}

	if px, reason, hit := trade.CheckExit(p, bar); hit {
		e.closePosition(px, bar, reason)
		return
	}

	ext := bar.High
	if p.Dir == pattern.Short {
		ext = bar.Low
	}
	if next := trade.NextStop(p, ext); next != p.Stop {
		e.log.Debug().
			Str("profile", p.ProfileName).
			Float64("from", p.Stop).
			Float64("to", next).
			Float64("r", p.RMultiple(ext)).
			Msg("stop ratchet")
		p.Stop = next
	}
}

func (e *Engine) closePosition(px float64, bar market.Bar, reason trade.ExitReason) {
	rec := trade.Close(e.pos, px, bar.Time, reason, e.costs, e.capital)
	e.capital = rec.CapitalAfter
	e.trades = append(e.trades, rec)
	e.pos = nil

	e.log.Debug().
		Str("trade", rec.ID).
		Str("reason", string(rec.Reason)).
		Float64("exit", rec.Exit).
		Float64("pnl", rec.PnL).
		Float64("capital", rec.CapitalAfter).
		Msg("close")

	if e.jrnl != nil {
		if err := e.jrnl.RecordTrade(journal.FromClosedTrade(e.series.Symbol, rec)); err != nil {
			e.log.Warn().Err(err).Msg("journal trade")
		}
		if err := e.jrnl.RecordEquity(journal.EquitySnapshot{Time: rec.ExitTime, Capital: rec.CapitalAfter}); err != nil {
			e.log.Warn().Err(err).Msg("journal equity")
		}
	}
}

// tryEnter runs detection over every profile, evaluates the surviving
// candidates against the current bar and opens a position for the
// highest-quality signal. Only the taken candidate's key is consumed;
// untaken candidates stay eligible on future bars.
func (e *Engine) tryEnter(i int, bar market.Bar, bias pattern.Direction) {
	penv := pattern.Env{
		ATR:           e.atr.Value(),
		ATRPercentile: indicators.PercentileRank(e.atrHist, e.atr.Value()),
	}
	benv := breakout.Env{
		ATR:           e.atr.Value(),
		FastEMA:       e.fastEMA.Value(),
		SlowEMA:       e.slowEMA.Value(),
		Bias:          bias,
		VolumeTracked: e.series.HasVolume(),
		AvgVolume:     e.avgVolume(),
		HaveRS:        e.benchmark != nil,
		RSNewHigh:     e.rs.NewHigh(),
		RSDeclining:   e.rs.Declining(),
	}

	var best *breakout.Signal
	for _, p := range e.profiles {
		cand := pattern.Detect(e.series.Bars, i, p, penv)
		if cand == nil || e.traded[cand.Key()] {
			continue
		}
		sig := e.eval.Evaluate(cand, bar, benv)
		if sig == nil {
			continue
		}
		if best == nil || sig.Quality > best.Quality {
			best = sig
		}
	}
	if best == nil {
		return
	}

	// The instance is consumed at signal emission, before sizing: a
	// skipped trade must not be re-detected on every following bar.
	key := best.Candidate.Key()
	e.traded[key] = true

	sized := risk.Size(risk.Inputs{
		Entry:                 best.Entry,
		Stop:                  best.Stop,
		Capital:               e.capital,
		RiskPercent:           e.cfg.RiskPercent,
		MaxNotionalMultiplier: e.cfg.MaxNotionalMultiplier,
	})
	if sized.Units <= 0 {
		e.log.Debug().Str("pattern", key).Msg("signal skipped: no size")
		return
	}

	e.pos = &trade.Position{
		Dir:          best.Direction,
		Entry:        best.Entry,
		Stop:         best.Stop,
		Target:       best.Target,
		OriginalStop: best.Stop,
		Units:        sized.Units,
		EntryTime:    bar.Time,
		ProfileName:  best.Profile.Name,
		PatternType:  best.Candidate.Shape,
		Key:          key,
	}

	e.log.Debug().
		Str("pattern", key).
		Str("shape", best.Candidate.Shape).
		Str("dir", best.Direction.String()).
		Float64("entry", best.Entry).
		Float64("stop", best.Stop).
		Float64("target", best.Target).
		Float64("units", sized.Units).
		Msg("open")
}

func (e *Engine) updateIndicators(bar, benchBar market.Bar) {
	e.atr.Update(bar)
	if e.atr.Ready() {
		e.atrHist = append(e.atrHist, e.atr.Value())
		if len(e.atrHist) > e.cfg.ATRHistory {
			e.atrHist = e.atrHist[1:]
		}
	}

	e.fastEMA.Update(bar)
	e.slowEMA.Update(bar)

	if e.benchmark != nil {
		e.benchFst.Update(benchBar)
		e.benchSlw.Update(benchBar)
	}

	if e.series.HasVolume() {
		e.volRing = append(e.volRing, bar.Volume)
		e.volSum += bar.Volume
		if len(e.volRing) > e.cfg.VolumePeriod {
			e.volSum -= e.volRing[0]
			e.volRing = e.volRing[1:]
		}
	}
}

// avgVolume is the trailing average over the last VolumePeriod bars, or 0
// while the window does not exist yet.
func (e *Engine) avgVolume() float64 {
	if len(e.volRing) < e.cfg.VolumePeriod {
		return 0
	}
	return e.volSum / float64(len(e.volRing))
}
