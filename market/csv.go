package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadCSV reads a bar series from a CSV file with columns
// time,open,high,low,close[,volume]. A header row starting with "time"
// is skipped. Rows must already be in ascending time order; NewSeries
// rejects anything else.
func LoadCSV(path, symbol string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []Bar
	line := 0

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(row) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			continue
		}

		b, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		bars = append(bars, b)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: no bars", path)
	}
	return NewSeries(symbol, bars)
}

func parseRow(row []string) (Bar, error) {
	if len(row) < 5 {
		return Bar{}, fmt.Errorf("need at least 5 cols time,open,high,low,close: %v", row)
	}

	ts, err := parseTime(strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, err
	}

	var px [4]float64
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad price %q: %w", row[i+1], err)
		}
		px[i] = v
	}

	b := Bar{Time: ts, Open: px[0], High: px[1], Low: px[2], Close: px[3]}

	if len(row) >= 6 && strings.TrimSpace(row[5]) != "" {
		vol, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
		b.Volume = vol
	}

	return b, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Unix seconds as a last resort.
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}
