package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/breakout/pattern"
	"github.com/quantrail/breakout/trade"
)

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	closeTime := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("t-42", closeTime)))
	require.NoError(t, j.RecordEquity(EquitySnapshot{Time: closeTime, Capital: 102570}))
	require.NoError(t, j.Close())

	trades, err := os.ReadFile(tradesPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(trades)), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "trade_id,symbol,profile"))
	assert.Contains(t, lines[1], "t-42")
	assert.Contains(t, lines[1], "TakeProfit")
	assert.Contains(t, lines[1], "2024-03-01T16:00:00Z")

	equity, err := os.ReadFile(equityPath)
	require.NoError(t, err)
	assert.Contains(t, string(equity), "time,capital")
	assert.Contains(t, string(equity), "102570.000000")
}

func TestFromClosedTrade(t *testing.T) {
	exitTime := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC)
	ct := trade.ClosedTrade{
		ID:           "t-7",
		Dir:          pattern.Short,
		Entry:        99.8,
		Exit:         92.4,
		Units:        120,
		EntryTime:    exitTime.Add(-72 * time.Hour),
		ExitTime:     exitTime,
		PnL:          888,
		Reason:       trade.ExitTakeProfit,
		ProfileName:  "pen",
		PatternType:  "pennant",
		CapitalAfter: 100888,
	}

	rec := FromClosedTrade("TEST", ct)
	assert.Equal(t, "t-7", rec.TradeID)
	assert.Equal(t, "TEST", rec.Symbol)
	assert.Equal(t, "short", rec.Direction)
	assert.Equal(t, "pen", rec.Profile)
	assert.Equal(t, "pennant", rec.Pattern)
	assert.Equal(t, "TakeProfit", rec.Reason)
	assert.Equal(t, 888.0, rec.RealizedPL)
	assert.Equal(t, exitTime, rec.CloseTime)
}
