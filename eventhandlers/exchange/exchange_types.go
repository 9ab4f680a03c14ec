package exchange

import (
	"errors"

	"github.com/gofrs/uuid"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/exchange/slippage"
	"github.com/openquant/backtester/eventtypes/fill"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidOrder is returned when a malformed order is submitted.
	// The order is rejected and never booked, the simulation continues
	ErrInvalidOrder = errors.New("invalid order")
	// ErrOrderNotFound is returned when cancelling an unknown, filled or
	// already cancelled order
	ErrOrderNotFound = errors.New("order not found")
)

// CommissionFunc models trading fees as a pure function of fill price and
// amount. A nil func costs nothing, the documented default
type CommissionFunc func(price, amount decimal.Decimal) decimal.Decimal

// RateCommission charges a flat fee per trade plus a proportional rate of
// the traded notional
func RateCommission(perTrade, rate decimal.Decimal) CommissionFunc {
	return func(price, amount decimal.Decimal) decimal.Decimal {
		return perTrade.Add(price.Mul(amount).Mul(rate))
	}
}

// ReferencePriceFunc selects the base execution price for a market order
// from the latest bar. The default uses the bar's close
type ReferencePriceFunc func(bar marketdata.Bar) decimal.Decimal

// Settings configures execution behaviour for a run
type Settings struct {
	Slippage        slippage.Model
	Commission      CommissionFunc
	ReferencePrice  ReferencePriceFunc
	MaxFillFraction decimal.Decimal
}

// Exchange simulates order execution against historical bars. It owns
// every order once submitted and is the only component permitted to
// mutate order status. Resting limit orders are kept in submission order
// per instrument so matching priority is deterministic
type Exchange struct {
	settings Settings
	prices   data.PriceServer
	book     map[string][]*order.Order
	byID     map[uuid.UUID]*order.Order
}

// ExecutionHandler details what the engine expects of an execution
// simulator
type ExecutionHandler interface {
	Submit(*order.Order) (*fill.Fill, error)
	OnMarketData(*marketdata.MarketData) []*fill.Fill
	Cancel(uuid.UUID) error
	Reset()
}
