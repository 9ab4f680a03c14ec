package portfolio

import (
	"sort"
	"time"

	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/eventhandlers/portfolio/holdings"
	"github.com/openquant/backtester/eventtypes/fill"
	"github.com/shopspring/decimal"
)

// Setup creates a portfolio ledger with the supplied opening balance
func Setup(initialCash decimal.Decimal) (*Portfolio, error) {
	if initialCash.IsNegative() {
		return nil, ErrNegativeInitialCash
	}
	return &Portfolio{
		initialCash: initialCash,
		cash:        initialCash,
		positions:   make(map[string]*holdings.Position),
	}, nil
}

// Reset returns the ledger to its opening state
func (p *Portfolio) Reset() {
	p.cash = p.initialCash
	p.positions = make(map[string]*holdings.Position)
	p.snapshots = nil
}

// OnFill updates cash and the target position for an executed trade and
// returns the realized P&L delta. Cash moves by the fill notional plus
// commission regardless of whether the trade opens, adds to, reduces or
// flips the position. An unseen instrument is inserted as a fresh flat
// position before applying
func (p *Portfolio) OnFill(f *fill.Fill) (decimal.Decimal, error) {
	if f == nil {
		return decimal.Zero, common.ErrNilEvent
	}
	pos, ok := p.positions[f.Symbol]
	if !ok {
		pos = &holdings.Position{Symbol: f.Symbol}
		p.positions[f.Symbol] = pos
	}
	p.cash = p.cash.Add(f.CashDelta())
	return pos.ApplyFill(f.Side, f.Amount, f.Price), nil
}

// MarkToMarket computes total equity using only the prices the caller
// supplies and appends an NAV snapshot. Instruments without a supplied
// price fall back to their average entry, which can only occur before the
// instrument's first bar has been emitted
func (p *Portfolio) MarkToMarket(t time.Time, lookup PriceLookup) (Snapshot, error) {
	if lookup == nil {
		return Snapshot{}, common.ErrNilArguments
	}
	if n := len(p.snapshots); n > 0 && !t.After(p.snapshots[n-1].Time) {
		return Snapshot{}, ErrNonMonotonicTime
	}
	equity := p.cash
	for symbol, pos := range p.positions {
		if pos.IsFlat() {
			continue
		}
		price, err := lookup(symbol)
		if err != nil {
			price = pos.AverageEntryPrice
		}
		equity = equity.Add(pos.MarketValue(price))
	}
	snap := Snapshot{Time: t, Cash: p.cash, Equity: equity}
	p.snapshots = append(p.snapshots, snap)
	return snap, nil
}

// Cash returns the current cash balance
func (p *Portfolio) Cash() decimal.Decimal {
	return p.cash
}

// InitialCash returns the opening balance
func (p *Portfolio) InitialCash() decimal.Decimal {
	return p.initialCash
}

// GetPosition returns a copy of the position held in an instrument
func (p *Portfolio) GetPosition(symbol string) (holdings.Position, bool) {
	pos, ok := p.positions[symbol]
	if !ok {
		return holdings.Position{}, false
	}
	return *pos, true
}

// Positions returns copies of every position touched during the run,
// sorted by symbol for deterministic iteration
func (p *Portfolio) Positions() []holdings.Position {
	out := make([]holdings.Position, 0, len(p.positions))
	for _, pos := range p.positions {
		out = append(out, *pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// RealizedPNL returns the cumulative realized P&L across all instruments
func (p *Portfolio) RealizedPNL() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.positions {
		total = total.Add(pos.RealizedPNL)
	}
	return total
}

// EquityCurve returns a copy of the recorded NAV snapshots in order
func (p *Portfolio) EquityCurve() []Snapshot {
	out := make([]Snapshot, len(p.snapshots))
	copy(out, p.snapshots)
	return out
}
