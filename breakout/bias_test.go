package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/breakout/pattern"
)

func TestParseBiasMode(t *testing.T) {
	m, err := ParseBiasMode("")
	require.NoError(t, err)
	assert.Equal(t, BiasAuto, m)

	for _, s := range []string{"auto", "long_only", "short_only", "off"} {
		m, err := ParseBiasMode(s)
		require.NoError(t, err)
		assert.Equal(t, BiasMode(s), m)
	}

	_, err = ParseBiasMode("sideways")
	assert.Error(t, err)
}

func TestRegimeBias(t *testing.T) {
	tests := []struct {
		name string
		mode BiasMode
		fast float64
		slow float64
		want pattern.Direction
	}{
		{"forced long", BiasLongOnly, 90, 100, pattern.Long},
		{"forced short", BiasShortOnly, 100, 90, pattern.Short},
		{"off", BiasOff, 100, 90, pattern.Both},
		{"auto uptrend", BiasAuto, 105, 100, pattern.Long},
		{"auto downtrend", BiasAuto, 95, 100, pattern.Short},
		{"auto equal", BiasAuto, 100, 100, pattern.Both},
		{"auto not warmed up", BiasAuto, 0, 100, pattern.Both},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegimeBias(tt.mode, tt.fast, tt.slow))
		})
	}
}

func TestRelStrength(t *testing.T) {
	t.Run("new high on a rising ratio", func(t *testing.T) {
		rs := NewRelStrength(5)
		assert.False(t, rs.NewHigh())

		for i := 0; i < 5; i++ {
			rs.Update(100+float64(i), 100) // ratio keeps rising
		}
		require.True(t, rs.Ready())
		assert.True(t, rs.NewHigh())
		assert.False(t, rs.Declining())
	})

	t.Run("no new high after a pullback", func(t *testing.T) {
		rs := NewRelStrength(5)
		for i := 0; i < 5; i++ {
			rs.Update(100+float64(i), 100)
		}
		rs.Update(95, 100)
		assert.False(t, rs.NewHigh())
		assert.True(t, rs.Declining())
	})

	t.Run("ignores a dead benchmark", func(t *testing.T) {
		rs := NewRelStrength(3)
		rs.Update(100, 0)
		rs.Update(100, -1)
		assert.False(t, rs.Ready())
	})
}
