// Package csv loads historical bar data from delimited files, one file
// per instrument
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/shopspring/decimal"
)

// ErrBadRow is returned when a row cannot be parsed into a bar
var ErrBadRow = errors.New("could not parse csv row")

const columns = 6

// BarsFromFile reads bars for one instrument. Expected columns are
// time, open, high, low, close, volume where time is RFC3339 or unix
// seconds. A header row is skipped when detected
func BarsFromFile(symbol, path string) ([]marketdata.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columns
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", path, err)
	}

	var bars []marketdata.Bar
	for i := range rows {
		bar, err := parseRow(symbol, rows[i])
		if err != nil {
			if i == 0 {
				// header
				continue
			}
			return nil, fmt.Errorf("%v row %v: %w", path, i+1, err)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %v has no rows", ErrBadRow, path)
	}
	return bars, nil
}

func parseRow(symbol string, row []string) (marketdata.Bar, error) {
	t, err := parseTime(row[0])
	if err != nil {
		return marketdata.Bar{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	fields := make([]decimal.Decimal, columns-1)
	for i := 1; i < columns; i++ {
		if fields[i-1], err = decimal.NewFromString(row[i]); err != nil {
			return marketdata.Bar{}, fmt.Errorf("%w: %v", ErrBadRow, err)
		}
	}
	return marketdata.Bar{
		Symbol: symbol,
		Time:   t,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}

func parseTime(field string) (time.Time, error) {
	if unix, err := strconv.ParseInt(field, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, field)
}
