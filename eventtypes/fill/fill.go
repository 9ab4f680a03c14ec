package fill

import (
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

// IsFill distinguishes the event from market data and order events
func (f *Fill) IsFill() bool {
	return true
}

// Value returns the notional value of the fill before commission
func (f *Fill) Value() decimal.Decimal {
	return f.Price.Mul(f.Amount)
}

// CashDelta returns the signed change the fill applies to the cash
// balance, commission included
func (f *Fill) CashDelta() decimal.Decimal {
	if f.Side == order.Sell {
		return f.Value().Sub(f.Commission)
	}
	return f.Value().Neg().Sub(f.Commission)
}
