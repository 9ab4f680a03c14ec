// Package slippage models the difference between a theoretical fill price
// and the price an order would really execute at
package slippage

import (
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

var basisPointDivisor = decimal.NewFromInt(10000)

// Model adjusts a reference price for execution cost. Implementations
// must be pure so backtests remain bit-reproducible
type Model interface {
	Adjust(price decimal.Decimal, side order.Side) decimal.Decimal
}

// None assumes ideal execution at the reference price. It is the
// documented default
type None struct{}

// Adjust returns the price unchanged
func (n None) Adjust(price decimal.Decimal, _ order.Side) decimal.Decimal {
	return price
}

// FixedBasisPoints worsens the reference price by a constant rate, buys
// pay up and sells receive less
type FixedBasisPoints struct {
	Rate decimal.Decimal
}

// Adjust applies the rate against the trade direction
func (f FixedBasisPoints) Adjust(price decimal.Decimal, side order.Side) decimal.Decimal {
	offset := price.Mul(f.Rate).Div(basisPointDivisor)
	if side == order.Sell {
		return price.Sub(offset)
	}
	return price.Add(offset)
}
