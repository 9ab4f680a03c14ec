package engine

import (
	"errors"

	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/eventholder"
	"github.com/openquant/backtester/eventhandlers/exchange"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/portfolio/holdings"
	"github.com/openquant/backtester/eventhandlers/strategies"
	"github.com/openquant/backtester/eventtypes/fill"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrUnhandledEventType is returned when an event of an unknown type
	// reaches the loop. It indicates a programming error, not bad input
	ErrUnhandledEventType = errors.New("unhandled event type")
	// ErrAlreadyRan is returned when Run is invoked twice without a Reset
	ErrAlreadyRan = errors.New("backtest already ran, reset before running again")
)

// BackTest is the orchestrator of a single simulation run. It owns the
// event queue and drives data, strategy, execution and the ledger in
// strict event order
type BackTest struct {
	queue     *eventholder.Holder
	data      *data.Handler
	strategy  strategies.Handler
	portfolio *portfolio.Portfolio
	exchange  *exchange.Exchange
	log       *zap.Logger
	fills []fill.Fill
	// the strategy is initialised on the first run only, Reset does not
	// revisit it
	stratReady bool
	ran        bool
}

// Results summarises a finished run
type Results struct {
	StrategyName string
	InitialCash  decimal.Decimal
	FinalCash    decimal.Decimal
	FinalEquity  decimal.Decimal
	RealizedPNL  decimal.Decimal
	EquityCurve  []portfolio.Snapshot
	Positions    []holdings.Position
	Fills        []fill.Fill
}
