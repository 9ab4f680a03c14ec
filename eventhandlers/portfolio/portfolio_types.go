package portfolio

import (
	"errors"
	"time"

	"github.com/openquant/backtester/eventhandlers/portfolio/holdings"
	"github.com/shopspring/decimal"
)

var (
	// ErrNonMonotonicTime is returned when a snapshot is requested at or
	// before the last snapshot's timestamp. Simulation time must move
	// forward, observing this is fatal to the run
	ErrNonMonotonicTime = errors.New("snapshot time not after previous snapshot")
	// ErrNegativeInitialCash is returned on setup with a negative balance
	ErrNegativeInitialCash = errors.New("initial cash cannot be negative")
)

// Snapshot is one NAV observation. Equity is cash plus the mark-to-market
// value of every open position using only prices known at Time
type Snapshot struct {
	Time   time.Time       `json:"timestamp"`
	Cash   decimal.Decimal `json:"cash"`
	Equity decimal.Decimal `json:"equity"`
}

// PriceLookup supplies a point-in-time price per instrument, sourced from
// the data handler so marks can never see the future
type PriceLookup func(symbol string) (decimal.Decimal, error)

// Portfolio is the stateful ledger of cash, positions and NAV history.
// It is exclusively owned by the engine for the duration of a run; the
// strategy sees it through the read-only Reader surface
type Portfolio struct {
	initialCash decimal.Decimal
	cash        decimal.Decimal
	positions   map[string]*holdings.Position
	snapshots   []Snapshot
}

// Reader is the read-only surface handed to strategies. Calls through it
// never affect simulation state
type Reader interface {
	Cash() decimal.Decimal
	InitialCash() decimal.Decimal
	GetPosition(symbol string) (holdings.Position, bool)
	Positions() []holdings.Position
	RealizedPNL() decimal.Decimal
	EquityCurve() []Snapshot
}
