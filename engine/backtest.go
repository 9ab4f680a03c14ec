package engine

import (
	"errors"
	"fmt"

	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/eventholder"
	"github.com/openquant/backtester/eventhandlers/exchange"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/strategies"
	"github.com/openquant/backtester/eventtypes/fill"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
	"go.uber.org/zap"
)

// New assembles a backtest from its components. A nil logger silences
// run output
func New(d *data.Handler, strat strategies.Handler, p *portfolio.Portfolio, ex *exchange.Exchange, log *zap.Logger) (*BackTest, error) {
	if d == nil || strat == nil || p == nil || ex == nil {
		return nil, common.ErrNilArguments
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BackTest{
		queue:     &eventholder.Holder{},
		data:      d,
		strategy:  strat,
		portfolio: p,
		exchange:  ex,
		log:       log,
	}, nil
}

// Reset returns every component to its pre-run state so the same
// assembly can run again
func (bt *BackTest) Reset() {
	bt.queue.Reset()
	bt.data.Reset()
	bt.portfolio.Reset()
	bt.exchange.Reset()
	bt.fills = nil
	bt.ran = false
}

// Run replays the dataset through the strategy. The queue drains fully
// before the next timestamp's market data is admitted, so everything an
// event causes settles before time moves on. Returning an error aborts
// the run with the ledger left at the failing event
func (bt *BackTest) Run() (*Results, error) {
	if bt.ran {
		return nil, ErrAlreadyRan
	}
	bt.ran = true
	if !bt.stratReady {
		if err := bt.strategy.Initialise(bt.data.Symbols()); err != nil {
			return nil, err
		}
		bt.stratReady = true
	}
	bt.log.Info("starting backtest",
		zap.String("strategy", bt.strategy.Name()),
		zap.Strings("instruments", bt.data.Symbols()))
	for {
		ev, err := bt.queue.Pop()
		if err != nil {
			if !errors.Is(err, eventholder.ErrEmptyQueue) {
				return nil, err
			}
			md, err := bt.data.Next()
			if err != nil {
				if errors.Is(err, data.ErrExhausted) {
					break
				}
				return nil, err
			}
			bt.queue.Push(md)
			continue
		}
		if err = bt.handleEvent(ev); err != nil {
			return nil, err
		}
	}
	results := bt.results()
	bt.log.Info("backtest complete",
		zap.String("final cash", results.FinalCash.String()),
		zap.String("final equity", results.FinalEquity.String()),
		zap.Int("fills", len(results.Fills)))
	return results, nil
}

func (bt *BackTest) handleEvent(ev common.Event) error {
	switch v := ev.(type) {
	case *marketdata.MarketData:
		return bt.onMarketData(v)
	case *order.Order:
		return bt.onOrder(v)
	case *fill.Fill:
		return bt.onFill(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledEventType, ev)
	}
}

// onMarketData is the only place simulation time advances. The ledger is
// marked before resting orders trade on the new bar, so the snapshot at
// time t never includes fills happening at t
func (bt *BackTest) onMarketData(ev *marketdata.MarketData) error {
	if _, err := bt.portfolio.MarkToMarket(ev.GetTime(), bt.data.CurrentPrice); err != nil {
		return err
	}
	for _, f := range bt.exchange.OnMarketData(ev) {
		bt.queue.Push(f)
	}
	requests, err := bt.strategy.OnData(ev, bt.data, bt.portfolio)
	if err != nil {
		return err
	}
	for i := range requests {
		o, err := order.New(requests[i], ev.GetTime())
		if err != nil {
			return err
		}
		bt.queue.Push(o)
	}
	return nil
}

// onOrder submits to the simulator. Rejections are a normal outcome of a
// strategy interacting with the market, they are logged and the run
// continues. Anything else wrong at this point is fatal
func (bt *BackTest) onOrder(ev *order.Order) error {
	f, err := bt.exchange.Submit(ev)
	if err != nil {
		if errors.Is(err, exchange.ErrInvalidOrder) {
			bt.log.Warn("order rejected",
				zap.String("symbol", ev.Symbol),
				zap.String("side", string(ev.Side)),
				zap.Error(err))
			return nil
		}
		return err
	}
	if f != nil {
		bt.queue.Push(f)
	}
	return nil
}

func (bt *BackTest) onFill(ev *fill.Fill) error {
	realized, err := bt.portfolio.OnFill(ev)
	if err != nil {
		return err
	}
	bt.fills = append(bt.fills, *ev)
	bt.log.Debug("fill applied",
		zap.String("symbol", ev.Symbol),
		zap.String("side", string(ev.Side)),
		zap.String("amount", ev.Amount.String()),
		zap.String("price", ev.Price.String()),
		zap.String("realized", realized.String()))
	return nil
}

// results snapshots the ledger after the loop has drained. Open positions
// are marked at the last emitted price, falling back to entry price for
// instruments that never traded
func (bt *BackTest) results() *Results {
	equity := bt.portfolio.Cash()
	positions := bt.portfolio.Positions()
	for i := range positions {
		if positions[i].IsFlat() {
			continue
		}
		price, err := bt.data.CurrentPrice(positions[i].Symbol)
		if err != nil {
			price = positions[i].AverageEntryPrice
		}
		equity = equity.Add(positions[i].MarketValue(price))
	}
	return &Results{
		StrategyName: bt.strategy.Name(),
		InitialCash:  bt.portfolio.InitialCash(),
		FinalCash:    bt.portfolio.Cash(),
		FinalEquity:  equity,
		RealizedPNL:  bt.portfolio.RealizedPNL(),
		EquityCurve:  bt.portfolio.EquityCurve(),
		Positions:    positions,
		Fills:        append([]fill.Fill(nil), bt.fills...),
	}
}
