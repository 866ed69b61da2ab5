// Package config loads the strategy configuration: account and risk
// settings, engine options, journaling, and the pattern profile list.
// Files may be YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantrail/breakout/backtest"
	"github.com/quantrail/breakout/breakout"
	"github.com/quantrail/breakout/pattern"
)

type Config struct {
	Account  AccountConfig   `json:"account" yaml:"account"`
	Risk     RiskConfig      `json:"risk" yaml:"risk"`
	Engine   EngineConfig    `json:"engine" yaml:"engine"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
	Profiles []ProfileConfig `json:"profiles" yaml:"profiles"`
}

type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

type RiskConfig struct {
	RiskPercent           float64 `json:"risk_percent" yaml:"risk_percent"`
	MaxNotionalMultiplier float64 `json:"max_notional_multiplier" yaml:"max_notional_multiplier"`
	CommissionPerUnit     float64 `json:"commission_per_unit" yaml:"commission_per_unit"`
	SlippagePerUnit       float64 `json:"slippage_per_unit" yaml:"slippage_per_unit"`
}

type EngineConfig struct {
	MarketBiasMode   string  `json:"market_bias_mode" yaml:"market_bias_mode"` // auto, long_only, short_only, off
	MinPrice         float64 `json:"min_price" yaml:"min_price"`
	RequireRSNewHigh bool    `json:"require_rs_new_high" yaml:"require_rs_new_high"`
	ATRPeriod        int     `json:"atr_period" yaml:"atr_period"`
	FastEMAPeriod    int     `json:"fast_ema_period" yaml:"fast_ema_period"`
	SlowEMAPeriod    int     `json:"slow_ema_period" yaml:"slow_ema_period"`
	VolumePeriod     int     `json:"volume_period" yaml:"volume_period"`
	RSWindow         int     `json:"rs_window" yaml:"rs_window"`
	CloseAtEnd       bool    `json:"close_at_end" yaml:"close_at_end"`
}

type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// TimeWindowConfig restricts a profile to hours [start_hour, end_hour).
type TimeWindowConfig struct {
	StartHour int `json:"start_hour" yaml:"start_hour"`
	EndHour   int `json:"end_hour" yaml:"end_hour"`
}

// ProfileConfig is the serialized form of one pattern.Profile. Zero fields
// inherit the archetype defaults.
type ProfileConfig struct {
	Name      string `json:"name" yaml:"name"`
	Archetype string `json:"archetype" yaml:"archetype"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`

	Lookback    int `json:"lookback,omitempty" yaml:"lookback,omitempty"`
	MinPivots   int `json:"min_pivots,omitempty" yaml:"min_pivots,omitempty"`
	PivotWindow int `json:"pivot_window,omitempty" yaml:"pivot_window,omitempty"`

	RSquaredMin    float64 `json:"r_squared_min,omitempty" yaml:"r_squared_min,omitempty"`
	SlopeTolerance float64 `json:"slope_tolerance,omitempty" yaml:"slope_tolerance,omitempty"`
	SteepnessMax   float64 `json:"steepness_max,omitempty" yaml:"steepness_max,omitempty"`

	ATRPercentileMax float64 `json:"atr_percentile,omitempty" yaml:"atr_percentile,omitempty"`
	RangePctMax      float64 `json:"range_pct_max,omitempty" yaml:"range_pct_max,omitempty"`

	BreakoutBufferPct float64 `json:"breakout_buffer_pct,omitempty" yaml:"breakout_buffer_pct,omitempty"`
	VolumeMultiplier  float64 `json:"volume_multiplier,omitempty" yaml:"volume_multiplier,omitempty"`
	RiskRewardRatio   float64 `json:"risk_reward_ratio,omitempty" yaml:"risk_reward_ratio,omitempty"`
	ATRMultiple       float64 `json:"atr_multiple,omitempty" yaml:"atr_multiple,omitempty"`

	TimeWindow        *TimeWindowConfig `json:"time_window,omitempty" yaml:"time_window,omitempty"`
	MomentumRequired  bool              `json:"momentum_required,omitempty" yaml:"momentum_required,omitempty"`
	AllowCounterTrend bool              `json:"allow_counter_trend,omitempty" yaml:"allow_counter_trend,omitempty"`

	ContractionSteps int     `json:"contraction_steps,omitempty" yaml:"contraction_steps,omitempty"`
	PreRunBars       int     `json:"pre_run_bars,omitempty" yaml:"pre_run_bars,omitempty"`
	PreRunReturn     float64 `json:"pre_run_return,omitempty" yaml:"pre_run_return,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration; the format follows the extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the settings the engine cannot default its way around.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Risk.RiskPercent <= 0 || c.Risk.RiskPercent > 100 {
		return fmt.Errorf("risk.risk_percent must be in (0, 100]")
	}
	if c.Risk.MaxNotionalMultiplier <= 0 {
		return fmt.Errorf("risk.max_notional_multiplier must be positive")
	}
	if _, err := breakout.ParseBiasMode(c.Engine.MarketBiasMode); err != nil {
		return err
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if len(c.Profiles) == 0 {
		return fmt.Errorf("at least one pattern profile is required")
	}
	for i := range c.Profiles {
		if _, err := c.Profiles[i].toProfile(); err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}
	}
	return nil
}

func (pc *ProfileConfig) toProfile() (*pattern.Profile, error) {
	arch, err := pattern.ParseArchetype(pc.Archetype)
	if err != nil {
		return nil, err
	}
	dir, err := pattern.ParseDirection(pc.Direction)
	if err != nil {
		return nil, err
	}

	p := &pattern.Profile{
		Name:              pc.Name,
		Archetype:         arch,
		Direction:         dir,
		Lookback:          pc.Lookback,
		MinPivots:         pc.MinPivots,
		PivotWindow:       pc.PivotWindow,
		RSquaredMin:       pc.RSquaredMin,
		SlopeTolerance:    pc.SlopeTolerance,
		SteepnessMax:      pc.SteepnessMax,
		ATRPercentileMax:  pc.ATRPercentileMax,
		RangePctMax:       pc.RangePctMax,
		BreakoutBufferPct: pc.BreakoutBufferPct,
		VolumeMultiplier:  pc.VolumeMultiplier,
		RiskRewardRatio:   pc.RiskRewardRatio,
		ATRMultiple:       pc.ATRMultiple,
		MomentumRequired:  pc.MomentumRequired,
		AllowCounterTrend: pc.AllowCounterTrend,
		ContractionSteps:  pc.ContractionSteps,
		PreRunBars:        pc.PreRunBars,
		PreRunReturn:      pc.PreRunReturn,
	}
	if pc.TimeWindow != nil {
		p.TimeWindow = pattern.TimeWindow{
			StartHour: pc.TimeWindow.StartHour,
			EndHour:   pc.TimeWindow.EndHour,
		}
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// PatternProfiles materializes the configured pattern profiles.
func (c *Config) PatternProfiles() ([]*pattern.Profile, error) {
	out := make([]*pattern.Profile, 0, len(c.Profiles))
	for i := range c.Profiles {
		p, err := c.Profiles[i].toProfile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// BacktestConfig converts the file settings into the engine config.
func (c *Config) BacktestConfig() backtest.Config {
	return backtest.Config{
		InitialCapital:        c.Account.InitialCapital,
		RiskPercent:           c.Risk.RiskPercent,
		MaxNotionalMultiplier: c.Risk.MaxNotionalMultiplier,
		CommissionPerUnit:     c.Risk.CommissionPerUnit,
		SlippagePerUnit:       c.Risk.SlippagePerUnit,
		MarketBiasMode:        breakout.BiasMode(c.Engine.MarketBiasMode),
		MinPrice:              c.Engine.MinPrice,
		RequireRSNewHigh:      c.Engine.RequireRSNewHigh,
		ATRPeriod:             c.Engine.ATRPeriod,
		FastEMAPeriod:         c.Engine.FastEMAPeriod,
		SlowEMAPeriod:         c.Engine.SlowEMAPeriod,
		VolumePeriod:          c.Engine.VolumePeriod,
		RSWindow:              c.Engine.RSWindow,
		CloseAtEnd:            c.Engine.CloseAtEnd,
	}
}

// Default returns a runnable multi-profile configuration using the
// reference parameterization: 80-bar triangles, 40-bar flags, 20-bar
// pennants, plus VCP, high-tight-flag and flat-base detectors.
func Default() *Config {
	return &Config{
		Account: AccountConfig{InitialCapital: 100_000},
		Risk: RiskConfig{
			RiskPercent:           1.0,
			MaxNotionalMultiplier: 4.0,
		},
		Engine: EngineConfig{
			MarketBiasMode: "auto",
			MinPrice:       1.0,
			CloseAtEnd:     true,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtest.sqlite",
		},
		Profiles: []ProfileConfig{
			{Name: "triangle-80", Archetype: "triangle", Lookback: 80},
			{Name: "flag-40", Archetype: "flag", Lookback: 40},
			{Name: "pennant-20", Archetype: "pennant", Lookback: 20},
			{Name: "vcp", Archetype: "vcp", ContractionSteps: 3},
			{Name: "htf", Archetype: "high_tight_flag", Direction: "long"},
			{Name: "flat-base", Archetype: "flat_base", RangePctMax: 0.08},
		},
	}
}
