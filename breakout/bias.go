// Package breakout turns detected pattern candidates into directional
// trade signals, applying regime, relative-strength, volume and momentum
// filters before testing price against the pattern boundaries.
package breakout

import (
	"fmt"

	"github.com/quantrail/breakout/pattern"
)

// BiasMode selects how the prevailing market bias is derived.
type BiasMode string

const (
	BiasAuto      BiasMode = "auto"      // from benchmark fast/slow EMA
	BiasLongOnly  BiasMode = "long_only" // force Long
	BiasShortOnly BiasMode = "short_only"
	BiasOff       BiasMode = "off" // no regime constraint
)

// ParseBiasMode validates a config string. Empty means auto.
func ParseBiasMode(s string) (BiasMode, error) {
	switch BiasMode(s) {
	case "":
		return BiasAuto, nil
	case BiasAuto, BiasLongOnly, BiasShortOnly, BiasOff:
		return BiasMode(s), nil
	}
	return "", fmt.Errorf("unknown market bias mode %q", s)
}

// RegimeBias derives the market bias from a benchmark's fast/slow EMA
// relationship: fast above slow is a Long regime, below is Short. When the
// benchmark EMAs are not warmed up (either value zero) there is no
// constraint.
func RegimeBias(mode BiasMode, fastEMA, slowEMA float64) pattern.Direction {
	switch mode {
	case BiasLongOnly:
		return pattern.Long
	case BiasShortOnly:
		return pattern.Short
	case BiasOff:
		return pattern.Both
	}

	if fastEMA == 0 || slowEMA == 0 {
		return pattern.Both
	}
	if fastEMA > slowEMA {
		return pattern.Long
	}
	if fastEMA < slowEMA {
		return pattern.Short
	}
	return pattern.Both
}
