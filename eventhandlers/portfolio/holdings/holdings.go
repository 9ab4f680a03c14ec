package holdings

import (
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

// ApplyFill mutates the position for an executed trade and returns the
// realized P&L delta, which is zero unless the fill reduces or flips the
// position. A flip first closes the existing amount at the fill price and
// opens the excess as a fresh position with the fill price as its new
// average entry
func (p *Position) ApplyFill(side order.Side, amount, price decimal.Decimal) decimal.Decimal {
	delta := amount
	if side == order.Sell {
		delta = amount.Neg()
	}

	switch {
	case p.Amount.IsZero():
		p.Amount = delta
		p.AverageEntryPrice = price
		return decimal.Zero
	case p.Amount.Sign() == delta.Sign():
		// adding to the existing exposure re-weights the entry price
		total := p.Amount.Add(delta)
		weighted := p.AverageEntryPrice.Mul(p.Amount.Abs()).Add(price.Mul(delta.Abs()))
		p.AverageEntryPrice = weighted.Div(total.Abs())
		p.Amount = total
		return decimal.Zero
	}

	closed := decimal.Min(delta.Abs(), p.Amount.Abs())
	realized := price.Sub(p.AverageEntryPrice).Mul(closed)
	if p.Amount.Sign() < 0 {
		realized = realized.Neg()
	}
	p.RealizedPNL = p.RealizedPNL.Add(realized)

	remaining := p.Amount.Add(delta)
	switch {
	case remaining.IsZero():
		p.Amount = decimal.Zero
		p.AverageEntryPrice = decimal.Zero
	case remaining.Sign() != p.Amount.Sign():
		// sign flip, the excess opens a fresh position at the fill price
		p.Amount = remaining
		p.AverageEntryPrice = price
	default:
		p.Amount = remaining
	}
	return realized
}

// MarketValue returns the signed value of the position at the given price
func (p *Position) MarketValue(price decimal.Decimal) decimal.Decimal {
	return p.Amount.Mul(price)
}

// UnrealizedPNL returns the paper profit of the open amount at the given
// price
func (p *Position) UnrealizedPNL(price decimal.Decimal) decimal.Decimal {
	if p.Amount.IsZero() {
		return decimal.Zero
	}
	pnl := price.Sub(p.AverageEntryPrice).Mul(p.Amount.Abs())
	if p.Amount.Sign() < 0 {
		return pnl.Neg()
	}
	return pnl
}

// IsFlat returns whether the position holds no exposure
func (p *Position) IsFlat() bool {
	return p.Amount.IsZero()
}
