package rsi

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/strategies/base"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
)

func barSeries(symbol string, start time.Time, closes ...int64) []marketdata.Bar {
	bars := make([]marketdata.Bar, len(closes))
	for i := range closes {
		c := decimal.NewFromInt(closes[i])
		bars[i] = marketdata.Bar{
			Symbol: symbol,
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: decimal.NewFromInt(1000),
		}
	}
	return bars
}

func TestName(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	assert.Equal(t, Name, s.Name())
	assert.NotEmpty(t, s.Description())
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(nil))

	err := s.SetCustomSettings(map[string]any{"unknown": 1337.0})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	err = s.SetCustomSettings(map[string]any{"rsi-period": -14.0})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	require.NoError(t, s.SetCustomSettings(map[string]any{
		"rsi-period": 3.0,
		"rsi-low":    25.0,
		"rsi-high":   75.0,
	}))
	assert.Equal(t, 3, s.rsiPeriod)
	assert.True(t, s.rsiLow.Equal(decimal.NewFromInt(25)))
	assert.True(t, s.rsiHigh.Equal(decimal.NewFromInt(75)))
}

func TestOnDataOversoldBuys(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{"rsi-period": 3.0}))
	require.NoError(t, s.Initialise([]string{"AAA"}))

	_, err := s.OnData(nil, nil, nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	h, err := data.NewHandler(map[string][]marketdata.Bar{
		"AAA": barSeries("AAA", start, 100, 97, 94, 91, 88, 85),
	})
	require.NoError(t, err)
	p, err := portfolio.Setup(decimal.NewFromInt(10000))
	require.NoError(t, err)

	var ev *marketdata.MarketData
	for h.HasNext() {
		ev, err = h.Next()
		require.NoError(t, err)
	}

	// a straight decline drives the indicator to the floor
	requests, err := s.OnData(ev, h, p)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "AAA", requests[0].Symbol)
	assert.Equal(t, order.Buy, requests[0].Side)
	assert.True(t, requests[0].Amount.IsPositive())
}

func TestOnDataOverboughtWhileFlat(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{"rsi-period": 3.0}))
	require.NoError(t, s.Initialise([]string{"AAA"}))

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	h, err := data.NewHandler(map[string][]marketdata.Bar{
		"AAA": barSeries("AAA", start, 100, 103, 106, 109, 112, 115),
	})
	require.NoError(t, err)
	p, err := portfolio.Setup(decimal.NewFromInt(10000))
	require.NoError(t, err)

	var ev *marketdata.MarketData
	for h.HasNext() {
		ev, err = h.Next()
		require.NoError(t, err)
	}

	// overbought maps to a flat target, which is already the case
	requests, err := s.OnData(ev, h, p)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestOnDataWarmup(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.Initialise([]string{"AAA"}))

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	h, err := data.NewHandler(map[string][]marketdata.Bar{
		"AAA": barSeries("AAA", start, 100, 101),
	})
	require.NoError(t, err)
	p, err := portfolio.Setup(decimal.NewFromInt(10000))
	require.NoError(t, err)

	ev, err := h.Next()
	require.NoError(t, err)

	requests, err := s.OnData(ev, h, p)
	require.NoError(t, err)
	assert.Empty(t, requests)
}
