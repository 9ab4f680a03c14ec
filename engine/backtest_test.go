package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/backtester/config"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/exchange"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/strategies/base"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
)

var errScripted = errors.New("scripted failure")

// scriptedStrategy emits a predetermined batch of requests per market
// data event, counting events from one
type scriptedStrategy struct {
	base.Strategy
	script map[int][]order.Request
	failAt int
	step   int
}

func (s *scriptedStrategy) Name() string        { return "scripted" }
func (s *scriptedStrategy) Description() string { return "emits a fixed order script" }
func (s *scriptedStrategy) SetDefaults()        {}
func (s *scriptedStrategy) SetCustomSettings(map[string]any) error {
	return nil
}

func (s *scriptedStrategy) OnData(_ *marketdata.MarketData, _ data.PriceServer, _ portfolio.Reader) ([]order.Request, error) {
	s.step++
	if s.failAt > 0 && s.step == s.failAt {
		return nil, errScripted
	}
	return s.script[s.step], nil
}

func threeBars(t *testing.T, closes ...int64) *data.Handler {
	t.Helper()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]marketdata.Bar, len(closes))
	for i := range closes {
		c := decimal.NewFromInt(closes[i])
		bars[i] = marketdata.Bar{
			Symbol: "AAA",
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c.Add(decimal.NewFromInt(1)),
			Low:    c.Sub(decimal.NewFromInt(1)),
			Close:  c,
			Volume: decimal.NewFromInt(1000),
		}
	}
	h, err := data.NewHandler(map[string][]marketdata.Bar{"AAA": bars})
	require.NoError(t, err)
	return h
}

func newBacktest(t *testing.T, d *data.Handler, strat *scriptedStrategy, initialCash int64) *BackTest {
	t.Helper()
	p, err := portfolio.Setup(decimal.NewFromInt(initialCash))
	require.NoError(t, err)
	ex, err := exchange.Setup(d, exchange.Settings{})
	require.NoError(t, err)
	bt, err := New(d, strat, p, ex, nil)
	require.NoError(t, err)
	return bt
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestRunRoundTrip(t *testing.T) {
	t.Parallel()
	ten := decimal.NewFromInt(10)
	strat := &scriptedStrategy{script: map[int][]order.Request{
		1: {{Symbol: "AAA", Side: order.Buy, Amount: ten, Type: order.Market}},
		3: {{Symbol: "AAA", Side: order.Sell, Amount: ten, Type: order.Market}},
	}}
	bt := newBacktest(t, threeBars(t, 100, 105, 103), strat, 10000)

	results, err := bt.Run()
	require.NoError(t, err)

	// -10*100 on the first bar, +10*103 on the third
	assert.True(t, results.FinalCash.Equal(decimal.NewFromInt(10030)), "received %v", results.FinalCash)
	assert.True(t, results.FinalEquity.Equal(decimal.NewFromInt(10030)), "received %v", results.FinalEquity)
	assert.True(t, results.RealizedPNL.Equal(decimal.NewFromInt(30)), "received %v", results.RealizedPNL)
	require.Len(t, results.Fills, 2)
	assert.Equal(t, order.Buy, results.Fills[0].Side)
	assert.Equal(t, order.Sell, results.Fills[1].Side)

	pos, ok := bt.portfolio.GetPosition("AAA")
	require.True(t, ok)
	assert.True(t, pos.IsFlat())

	// one observation per timestamp, taken before that timestamp's fills
	curve := results.EquityCurve
	require.Len(t, curve, 3)
	assert.True(t, curve[0].Equity.Equal(decimal.NewFromInt(10000)), "received %v", curve[0].Equity)
	assert.True(t, curve[1].Equity.Equal(decimal.NewFromInt(10050)), "received %v", curve[1].Equity)
	assert.True(t, curve[2].Equity.Equal(decimal.NewFromInt(10030)), "received %v", curve[2].Equity)
	for i := 1; i < len(curve); i++ {
		assert.True(t, curve[i].Time.After(curve[i-1].Time))
	}
}

func TestRunLimitOrderCrossesLater(t *testing.T) {
	t.Parallel()
	strat := &scriptedStrategy{script: map[int][]order.Request{
		1: {{
			Symbol: "AAA",
			Side:   order.Buy,
			Amount: decimal.NewFromInt(5),
			Type:   order.Limit,
			Price:  decimal.NewFromInt(95),
		}},
	}}
	bt := newBacktest(t, threeBars(t, 100, 96, 103), strat, 10000)

	results, err := bt.Run()
	require.NoError(t, err)

	// the second bar trades down to 95 and crosses the resting order
	require.Len(t, results.Fills, 1)
	assert.True(t, results.Fills[0].Price.Equal(decimal.NewFromInt(95)), "received %v", results.Fills[0].Price)
	assert.True(t, results.FinalCash.Equal(decimal.NewFromInt(9525)), "received %v", results.FinalCash)
	pos, ok := bt.portfolio.GetPosition("AAA")
	require.True(t, ok)
	assert.True(t, pos.Amount.Equal(decimal.NewFromInt(5)))
}

func TestRunRejectedOrderContinues(t *testing.T) {
	t.Parallel()
	strat := &scriptedStrategy{script: map[int][]order.Request{
		1: {{Symbol: "AAA", Side: order.Buy, Amount: decimal.NewFromInt(-5), Type: order.Market}},
	}}
	bt := newBacktest(t, threeBars(t, 100, 101, 103), strat, 10000)

	results, err := bt.Run()
	require.NoError(t, err)
	assert.Empty(t, results.Fills)
	assert.True(t, results.FinalCash.Equal(decimal.NewFromInt(10000)))
	assert.Len(t, results.EquityCurve, 3)
}

func TestRunStrategyErrorIsFatal(t *testing.T) {
	t.Parallel()
	strat := &scriptedStrategy{failAt: 2}
	bt := newBacktest(t, threeBars(t, 100, 101, 103), strat, 10000)

	_, err := bt.Run()
	assert.ErrorIs(t, err, errScripted)
}

func TestRunTwiceNeedsReset(t *testing.T) {
	t.Parallel()
	ten := decimal.NewFromInt(10)
	strat := &scriptedStrategy{script: map[int][]order.Request{
		1: {{Symbol: "AAA", Side: order.Buy, Amount: ten, Type: order.Market}},
	}}
	bt := newBacktest(t, threeBars(t, 100, 101, 103), strat, 10000)

	first, err := bt.Run()
	require.NoError(t, err)

	_, err = bt.Run()
	assert.ErrorIs(t, err, ErrAlreadyRan)

	bt.Reset()
	strat.step = 0
	second, err := bt.Run()
	require.NoError(t, err)
	assert.True(t, first.FinalCash.Equal(second.FinalCash))
	assert.Equal(t, len(first.Fills), len(second.Fills))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := map[string][]marketdata.Bar{
		"AAA": {{
			Symbol: "AAA",
			Time:   start,
			Open:   decimal.NewFromInt(100),
			High:   decimal.NewFromInt(101),
			Low:    decimal.NewFromInt(99),
			Close:  decimal.NewFromInt(100),
			Volume: decimal.NewFromInt(1000),
		}},
	}

	cfg := config.Default()
	cfg.Strategy.Name = "unknown"
	_, err := NewFromConfig(cfg, bars, nil)
	assert.ErrorIs(t, err, base.ErrStrategyNotFound)

	cfg = config.Default()
	bt, err := NewFromConfig(cfg, bars, nil)
	require.NoError(t, err)

	results, err := bt.Run()
	require.NoError(t, err)
	assert.Equal(t, "dollarcostaverage", results.StrategyName)
	// one bar, one fixed purchase of 100 cash at close 100
	require.Len(t, results.Fills, 1)
	assert.True(t, results.Fills[0].Amount.Equal(decimal.NewFromInt(1)), "received %v", results.Fills[0].Amount)
	assert.True(t, results.FinalCash.Equal(decimal.NewFromInt(99900)), "received %v", results.FinalCash)
}
