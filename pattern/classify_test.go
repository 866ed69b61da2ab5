package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHTF(t *testing.T) {
	// Ten bars doubling the price, then a ten-bar tight flag.
	closes := []float64{
		50, 55, 61, 67, 74, 81, 88, 94, 98, 101,
		96, 101, 98, 102, 97, 101.5, 98.5, 102.5, 99, 102,
	}
	bars := barsFromPath(closes)

	p := &Profile{
		Name:        "htf",
		Archetype:   HTF,
		Lookback:    10,
		PivotWindow: 2,
		PreRunBars:  10,
	}
	require.NoError(t, p.Normalize())

	c := Detect(bars, 20, p, Env{ATRPercentile: 40})
	require.NotNil(t, c)

	assert.Equal(t, "high_tight_flag", c.Shape)
	assert.Equal(t, Long, c.Hint)
	assert.InDelta(t, 103.0, c.Resistance, 1e-9)
	assert.InDelta(t, 95.5, c.Support, 1e-9)
	assert.InDelta(t, 0.947, c.Quality, 0.01)
	assert.Equal(t, 10, c.StartIndex)
	assert.Equal(t, 19, c.EndIndex)

	t.Run("weak pre-run", func(t *testing.T) {
		weak := append([]float64{
			50, 52, 55, 58, 61, 64, 67, 70, 73, 75,
		}, closes[10:]...)
		assert.Nil(t, Detect(barsFromPath(weak), 20, p, Env{ATRPercentile: 40}))
	})

	t.Run("flag too loose", func(t *testing.T) {
		loose := append(append([]float64{}, closes[:10]...),
			85, 103, 86, 102, 87, 101, 88, 100, 89, 99)
		assert.Nil(t, Detect(barsFromPath(loose), 20, p, Env{ATRPercentile: 40}))
	})

	t.Run("flag too tight to be a flag", func(t *testing.T) {
		tight := append(append([]float64{}, closes[:10]...),
			100, 100.2, 100.1, 100.2, 100, 100.1, 100.2, 100, 100.1, 100.2)
		assert.Nil(t, Detect(barsFromPath(tight), 20, p, Env{ATRPercentile: 40}))
	})

	t.Run("not enough pre-run history", func(t *testing.T) {
		assert.Nil(t, Detect(bars, 19, p, Env{ATRPercentile: 40}))
	})
}

func TestDetectFlatBase(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 99.5
		if i%2 == 1 {
			closes[i] = 100.5
		}
	}
	bars := barsFromPath(closes)

	p := &Profile{
		Name:        "base",
		Archetype:   FlatBase,
		Lookback:    20,
		RangePctMax: 0.08,
	}
	require.NoError(t, p.Normalize())

	c := Detect(bars, 20, p, Env{ATRPercentile: 30})
	require.NotNil(t, c)

	assert.Equal(t, "flat_base", c.Shape)
	assert.Equal(t, Both, c.Hint)
	assert.InDelta(t, 101.0, c.Resistance, 1e-9)
	assert.InDelta(t, 99.0, c.Support, 1e-9)
	assert.InDelta(t, 1-2.0/101.0, c.Quality, 1e-9)

	t.Run("volatile window rejected", func(t *testing.T) {
		assert.Nil(t, Detect(bars, 20, p, Env{ATRPercentile: 70}))
	})

	t.Run("wide window rejected", func(t *testing.T) {
		wide := barsFromPath([]float64{
			100, 110, 95, 108, 92, 106, 96, 104, 98, 102,
			100, 110, 95, 108, 92, 106, 96, 104, 98, 102,
		})
		assert.Nil(t, Detect(wide, 20, p, Env{ATRPercentile: 30}))
	})
}

func TestProfileNormalize(t *testing.T) {
	t.Run("archetype defaults", func(t *testing.T) {
		p := &Profile{Archetype: Pennant}
		require.NoError(t, p.Normalize())

		assert.Equal(t, "pennant", p.Name)
		assert.Equal(t, 20, p.Lookback)
		assert.Equal(t, 3, p.MinPivots)
		assert.Equal(t, 3, p.PivotWindow)
		assert.Equal(t, 0.6, p.RSquaredMin)
		assert.Equal(t, 2.0, p.RiskRewardRatio)
	})

	t.Run("vcp and htf extras", func(t *testing.T) {
		v := &Profile{Archetype: VCP}
		require.NoError(t, v.Normalize())
		assert.Equal(t, 3, v.ContractionSteps)

		h := &Profile{Archetype: HTF}
		require.NoError(t, h.Normalize())
		assert.Equal(t, 40, h.PreRunBars)
		assert.Equal(t, 1.0, h.PreRunReturn)
	})

	t.Run("invalid settings", func(t *testing.T) {
		assert.Error(t, (&Profile{}).Normalize())
		assert.Error(t, (&Profile{Archetype: Triangle, Lookback: 4, PivotWindow: 2}).Normalize())
		assert.Error(t, (&Profile{Archetype: Triangle, MinPivots: 1}).Normalize())
	})
}

func TestTimeWindow(t *testing.T) {
	assert.True(t, TimeWindow{}.Contains(3))
	assert.False(t, TimeWindow{}.Enabled())

	day := TimeWindow{StartHour: 9, EndHour: 16}
	assert.True(t, day.Contains(9))
	assert.True(t, day.Contains(15))
	assert.False(t, day.Contains(16))
	assert.False(t, day.Contains(8))

	overnight := TimeWindow{StartHour: 22, EndHour: 4}
	assert.True(t, overnight.Contains(23))
	assert.True(t, overnight.Contains(2))
	assert.False(t, overnight.Contains(12))
}

func TestDirectionAndArchetypeParsing(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Both, d)

	d, err = ParseDirection("short")
	require.NoError(t, err)
	assert.Equal(t, Short, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	a, err := ParseArchetype("high_tight_flag")
	require.NoError(t, err)
	assert.Equal(t, HTF, a)

	_, err = ParseArchetype("wedge")
	assert.Error(t, err)

	assert.True(t, Both.Allows(Long))
	assert.True(t, Long.Allows(Long))
	assert.False(t, Long.Allows(Short))
}
