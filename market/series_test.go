package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBars(n int) []Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]Bar, n)
	for i := range bars {
		bars[i] = Bar{
			Time:  base.Add(time.Duration(i) * time.Hour),
			Open:  100,
			High:  101,
			Low:   99,
			Close: 100,
		}
	}
	return bars
}

func TestNewSeries(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := NewSeries("TEST", validBars(5))
		require.NoError(t, err)
		assert.Equal(t, 5, s.Len())
		assert.Equal(t, "TEST", s.Symbol)
		assert.False(t, s.HasVolume())
	})

	t.Run("volume flag", func(t *testing.T) {
		bars := validBars(5)
		bars[2].Volume = 1200
		s, err := NewSeries("TEST", bars)
		require.NoError(t, err)
		assert.True(t, s.HasVolume())
	})

	t.Run("non-finite price", func(t *testing.T) {
		bars := validBars(3)
		bars[1].Close = math.NaN()
		_, err := NewSeries("TEST", bars)
		assert.Error(t, err)

		bars = validBars(3)
		bars[1].High = math.Inf(1)
		_, err = NewSeries("TEST", bars)
		assert.Error(t, err)
	})

	t.Run("high below low", func(t *testing.T) {
		bars := validBars(3)
		bars[1].High, bars[1].Low = 99, 101
		_, err := NewSeries("TEST", bars)
		assert.Error(t, err)
	})

	t.Run("out of order timestamps", func(t *testing.T) {
		bars := validBars(3)
		bars[2].Time = bars[0].Time
		_, err := NewSeries("TEST", bars)
		assert.Error(t, err)
	})

	t.Run("duplicate timestamps", func(t *testing.T) {
		bars := validBars(3)
		bars[2].Time = bars[1].Time
		_, err := NewSeries("TEST", bars)
		assert.Error(t, err)
	})
}

func TestBarRange(t *testing.T) {
	b := Bar{High: 104.5, Low: 101.25}
	assert.InDelta(t, 3.25, b.Range(), 1e-9)
}
