package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ascendingTriangleTurns draws a 40-bar ascending triangle: pivot highs on
// a near-flat resistance (slope 0.003125/bar), pivot lows on a rising
// support (slope 0.1875/bar), both exactly collinear so R-squared is 1.
func ascendingTriangleTurns() []turn {
	return []turn{
		{0, 104}, {6, 100}, {10, 110}, {14, 101.5}, {18, 110.025},
		{22, 103}, {26, 110.05}, {30, 104.5}, {34, 110.075},
		{36, 105.625}, {39, 109.9},
	}
}

func triangleProfile(t *testing.T) *Profile {
	t.Helper()
	p := &Profile{
		Name:        "tri",
		Archetype:   Triangle,
		Lookback:    40,
		PivotWindow: 2,
		MinPivots:   3,
		RSquaredMin: 0.9,
	}
	require.NoError(t, p.Normalize())
	return p
}

func TestDetectTriangleAscending(t *testing.T) {
	bars := zigzagBars(ascendingTriangleTurns())
	p := triangleProfile(t)

	c := Detect(bars, 40, p, Env{})
	require.NotNil(t, c)

	assert.Equal(t, "ascending", c.Shape)
	assert.Equal(t, Long, c.Hint)
	assert.InDelta(t, 110.3906, c.Resistance, 0.001)
	assert.InDelta(t, 105.8875, c.Support, 0.001)
	assert.InDelta(t, 1.0, c.Quality, 1e-9)

	// The candidate is anchored on its pivot span, not the window.
	assert.Equal(t, 6, c.StartIndex)
	assert.Equal(t, 36, c.EndIndex)
	assert.Equal(t, "tri:6:36", c.Key())
}

func TestDetectTriangleDescending(t *testing.T) {
	// Mirror image: falling resistance against a near-flat support.
	bars := zigzagBars([]turn{
		{0, 106}, {6, 110}, {10, 100}, {14, 108.5}, {18, 100.025},
		{22, 107}, {26, 100.05}, {30, 105.5}, {34, 100.075},
		{36, 104.375}, {39, 101},
	})
	p := triangleProfile(t)

	c := Detect(bars, 40, p, Env{})
	require.NotNil(t, c)
	assert.Equal(t, "descending", c.Shape)
	assert.Equal(t, Short, c.Hint)
	assert.Greater(t, c.Resistance, c.Support)
}

func TestDetectTriangleSymmetrical(t *testing.T) {
	// Converging sides: resistance falls at 0.2/bar, support rises at
	// 0.125/bar, magnitude ratio 1.6 within [0.5, 2.0].
	bars := zigzagBars([]turn{
		{0, 104}, {6, 100}, {10, 110}, {14, 101}, {18, 108.4},
		{22, 102}, {26, 106.8}, {30, 103}, {34, 105.2},
		{36, 103.75}, {39, 104.2},
	})
	p := triangleProfile(t)

	c := Detect(bars, 40, p, Env{})
	require.NotNil(t, c)
	assert.Equal(t, "symmetrical", c.Shape)
	assert.Equal(t, Both, c.Hint)
}

func TestDetectTriangleRejections(t *testing.T) {
	p := triangleProfile(t)

	t.Run("trending bars have no structure", func(t *testing.T) {
		turns := []turn{{0, 100}, {39, 139}}
		assert.Nil(t, Detect(zigzagBars(turns), 40, p, Env{}))
	})

	t.Run("window too short", func(t *testing.T) {
		bars := zigzagBars(ascendingTriangleTurns())
		assert.Nil(t, Detect(bars, 39, p, Env{}))
	})

	t.Run("parallel channel is not a triangle", func(t *testing.T) {
		bars := zigzagBars(flagTurns())
		assert.Nil(t, Detect(bars, 40, p, Env{}))
	})
}

// flagTurns draws a rising parallel channel: both sides slope 0.1875/bar.
func flagTurns() []turn {
	return []turn{
		{0, 104}, {6, 100}, {10, 110}, {14, 101.5}, {18, 111.5},
		{22, 103}, {26, 113}, {30, 104.5}, {34, 114.5},
		{36, 105.625}, {39, 108},
	}
}

func TestDetectFlag(t *testing.T) {
	bars := zigzagBars(flagTurns())
	p := &Profile{
		Name:        "flg",
		Archetype:   Flag,
		Lookback:    40,
		PivotWindow: 2,
		MinPivots:   3,
		RSquaredMin: 0.9,
	}
	require.NoError(t, p.Normalize())

	c := Detect(bars, 40, p, Env{})
	require.NotNil(t, c)
	assert.Equal(t, "flag", c.Shape)
	assert.Equal(t, Both, c.Hint)
	assert.InDelta(t, 115.7375, c.Resistance, 0.001)
	assert.InDelta(t, 105.8875, c.Support, 0.001)
}

func TestDetectPennant(t *testing.T) {
	// Converging wedge with equal-magnitude slopes of 0.125/bar.
	bars := zigzagBars([]turn{
		{0, 104}, {6, 100}, {10, 110}, {14, 101}, {18, 109},
		{22, 102}, {26, 108}, {30, 103}, {34, 107},
		{36, 103.75}, {39, 105.5},
	})
	p := &Profile{
		Name:        "pen",
		Archetype:   Pennant,
		Lookback:    40,
		PivotWindow: 2,
		MinPivots:   3,
		RSquaredMin: 0.9,
	}
	require.NoError(t, p.Normalize())

	c := Detect(bars, 40, p, Env{})
	require.NotNil(t, c)
	assert.Equal(t, "pennant", c.Shape)
	assert.Equal(t, Both, c.Hint)
	assert.InDelta(t, 106.675, c.Resistance, 0.001)
	assert.InDelta(t, 103.825, c.Support, 0.001)

	t.Run("parallel channel rejected", func(t *testing.T) {
		bars := zigzagBars(flagTurns())
		assert.Nil(t, Detect(bars, 40, p, Env{}))
	})
}
