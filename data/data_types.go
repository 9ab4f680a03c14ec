package data

import (
	"errors"

	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoData is returned when a price is requested for an instrument
	// before any of its bars have been emitted
	ErrNoData = errors.New("no data emitted for instrument")
	// ErrExhausted signals the normal end of the dataset, it is the
	// terminal condition of the simulation loop rather than a failure
	ErrExhausted = errors.New("data exhausted")
	// ErrNoBars is returned when a handler is created without any bars
	ErrNoBars = errors.New("no bars supplied")
)

// Handler owns the full historical dataset and exposes it as a
// forward-only stream of bundled market data events. The point-in-time
// query surface only ever reflects bars that have already been emitted,
// which is the structural guarantee against lookahead bias
type Handler struct {
	stream  []*marketdata.MarketData
	offset  int
	symbols []string
	latest  map[string]marketdata.Bar
	history map[string][]marketdata.Bar
}

// Streamer is the forward-only event surface consumed by the engine
type Streamer interface {
	HasNext() bool
	Next() (*marketdata.MarketData, error)
	Offset() int
}

// PriceServer is the read-only point-in-time surface handed to the
// portfolio ledger, the execution simulator and strategies
type PriceServer interface {
	CurrentPrice(symbol string) (decimal.Decimal, error)
	CurrentBar(symbol string) (marketdata.Bar, error)
	History(symbol string, lookback int) []marketdata.Bar
	StreamClose(symbol string) []decimal.Decimal
	Symbols() []string
}
