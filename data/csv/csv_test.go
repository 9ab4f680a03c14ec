package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestBarsFromFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `time,open,high,low,close,volume
2020-01-01T00:00:00Z,100,101,99,100.5,1000
2020-01-01T01:00:00Z,100.5,102,100,101,1500
`)
	bars, err := BarsFromFile("AAA", path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "AAA", bars[0].Symbol)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.True(t, bars[0].Close.Equal(decimal.NewFromFloat(100.5)), "received %v", bars[0].Close)
	assert.True(t, bars[1].Volume.Equal(decimal.NewFromInt(1500)), "received %v", bars[1].Volume)
}

func TestBarsFromFileUnixTime(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "1577836800,100,101,99,100.5,1000\n")
	bars, err := BarsFromFile("AAA", path)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Time)
}

func TestBarsFromFileErrors(t *testing.T) {
	t.Parallel()
	_, err := BarsFromFile("AAA", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = BarsFromFile("AAA", writeFile(t, "time,open,high,low,close,volume\n"))
	assert.ErrorIs(t, err, ErrBadRow)

	_, err = BarsFromFile("AAA", writeFile(t, `time,open,high,low,close,volume
2020-01-01T00:00:00Z,100,101,99,not-a-number,1000
`))
	assert.ErrorIs(t, err, ErrBadRow)
}
