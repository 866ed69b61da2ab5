package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Run("with header and volume", func(t *testing.T) {
		path := writeFile(t, `time,open,high,low,close,volume
2024-01-02T00:00:00Z,100,101,99,100.5,1500
2024-01-02T01:00:00Z,100.5,102,100,101.5,1600
`)

		s, err := LoadCSV(path, "TEST")
		require.NoError(t, err)
		require.Equal(t, 2, s.Len())

		assert.Equal(t, "TEST", s.Symbol)
		assert.True(t, s.HasVolume())
		assert.Equal(t, 100.0, s.Bars[0].Open)
		assert.Equal(t, 101.5, s.Bars[1].Close)
		assert.Equal(t, 1600.0, s.Bars[1].Volume)
		assert.Equal(t, time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC), s.Bars[1].Time)
	})

	t.Run("without header or volume", func(t *testing.T) {
		path := writeFile(t, `2024-01-02 00:00:00,100,101,99,100.5
2024-01-02 01:00:00,100.5,102,100,101.5
`)

		s, err := LoadCSV(path, "TEST")
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
		assert.False(t, s.HasVolume())
	})

	t.Run("unix seconds", func(t *testing.T) {
		path := writeFile(t, `1704153600,100,101,99,100.5
1704157200,100.5,102,100,101.5
`)

		s, err := LoadCSV(path, "TEST")
		require.NoError(t, err)
		assert.Equal(t, time.Unix(1704153600, 0).UTC(), s.Bars[0].Time)
	})

	t.Run("bad price", func(t *testing.T) {
		path := writeFile(t, `2024-01-02T00:00:00Z,100,abc,99,100.5
`)
		_, err := LoadCSV(path, "TEST")
		assert.Error(t, err)
	})

	t.Run("bad time", func(t *testing.T) {
		path := writeFile(t, `yesterday,100,101,99,100.5
`)
		_, err := LoadCSV(path, "TEST")
		assert.Error(t, err)
	})

	t.Run("too few columns", func(t *testing.T) {
		path := writeFile(t, `2024-01-02T00:00:00Z,100,101
`)
		_, err := LoadCSV(path, "TEST")
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "")
		_, err := LoadCSV(path, "TEST")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), "TEST")
		assert.Error(t, err)
	})
}
