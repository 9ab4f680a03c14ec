package exchange

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/exchange/slippage"
	"github.com/openquant/backtester/eventtypes/event"
	"github.com/openquant/backtester/eventtypes/fill"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

// Setup creates an execution simulator reading point-in-time prices from
// the supplied server. Zero-value settings default to no slippage, no
// commission, close-price reference fills and a fill cap of one full bar
// of volume
func Setup(prices data.PriceServer, settings Settings) (*Exchange, error) {
	if prices == nil {
		return nil, common.ErrNilArguments
	}
	if settings.Slippage == nil {
		settings.Slippage = slippage.None{}
	}
	if settings.Commission == nil {
		settings.Commission = func(_, _ decimal.Decimal) decimal.Decimal { return decimal.Zero }
	}
	if settings.ReferencePrice == nil {
		settings.ReferencePrice = func(b marketdata.Bar) decimal.Decimal { return b.Close }
	}
	if settings.MaxFillFraction.LessThanOrEqual(decimal.Zero) {
		settings.MaxFillFraction = decimal.NewFromInt(1)
	}
	return &Exchange{
		settings: settings,
		prices:   prices,
		book:     make(map[string][]*order.Order),
		byID:     make(map[uuid.UUID]*order.Order),
	}, nil
}

// Reset clears the resting order book
func (e *Exchange) Reset() {
	e.book = make(map[string][]*order.Order)
	e.byID = make(map[uuid.UUID]*order.Order)
}

// Submit assesses a new order. Market orders fill immediately and fully
// at the slippage-adjusted reference price of the latest bar. Limit
// orders cross immediately if the latest bar's range already satisfies
// the limit, otherwise they are booked until market data crosses them.
// Malformed orders fail fast and are never booked
func (e *Exchange) Submit(o *order.Order) (*fill.Fill, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if err := e.validate(o); err != nil {
		return nil, err
	}
	e.byID[o.ID] = o

	switch o.Type {
	case order.Market:
		bar, err := e.prices.CurrentBar(o.Symbol)
		if err != nil {
			return nil, fmt.Errorf("%w: no market data emitted for %v", ErrInvalidOrder, o.Symbol)
		}
		price := e.settings.Slippage.Adjust(e.settings.ReferencePrice(bar), o.Side)
		o.Status = order.Filled
		return e.newFill(o, o.Amount, price, o.GetTime()), nil
	default: // limit
		bar, err := e.prices.CurrentBar(o.Symbol)
		if err == nil && crossed(o, bar) {
			f := e.fillAgainstBar(o, bar, o.GetTime())
			if o.Status != order.Filled {
				e.bookOrder(o)
			}
			return f, nil
		}
		e.bookOrder(o)
		return nil, nil
	}
}

// OnMarketData tests every resting order on the instruments present in
// the event against the new bar's trading range. Eligible orders fill at
// their limit price in booking order, partial fills leave the remainder
// booked with reduced quantity
func (e *Exchange) OnMarketData(ev *marketdata.MarketData) []*fill.Fill {
	if ev == nil {
		return nil
	}
	var fills []*fill.Fill
	for _, symbol := range ev.Symbols() {
		resting := e.book[symbol]
		if len(resting) == 0 {
			continue
		}
		bar := ev.Bars[symbol]
		remaining := resting[:0]
		for _, o := range resting {
			if !crossed(o, bar) {
				remaining = append(remaining, o)
				continue
			}
			if f := e.fillAgainstBar(o, bar, ev.GetTime()); f != nil {
				fills = append(fills, f)
			}
			if o.Status != order.Filled {
				remaining = append(remaining, o)
			}
		}
		e.book[symbol] = remaining
	}
	return fills
}

// Cancel removes a booked order from the book
func (e *Exchange) Cancel(id uuid.UUID) error {
	o, ok := e.byID[id]
	if !ok || o.Status != order.Booked {
		return fmt.Errorf("%w: %v", ErrOrderNotFound, id)
	}
	o.Status = order.Cancelled
	resting := e.book[o.Symbol]
	for i := range resting {
		if resting[i].ID == id {
			e.book[o.Symbol] = append(resting[:i], resting[i+1:]...)
			break
		}
	}
	return nil
}

// OpenOrders returns copies of the resting orders for an instrument in
// booking order
func (e *Exchange) OpenOrders(symbol string) []order.Order {
	resting := e.book[symbol]
	out := make([]order.Order, len(resting))
	for i := range resting {
		out[i] = *resting[i]
	}
	return out
}

func (e *Exchange) validate(o *order.Order) error {
	if !o.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, received %v", ErrInvalidOrder, o.Amount)
	}
	switch o.Type {
	case order.Market:
	case order.Limit:
		if !o.Price.IsPositive() {
			return fmt.Errorf("%w: limit order requires a positive limit price", ErrInvalidOrder)
		}
	default:
		return fmt.Errorf("%w: unrecognised order type '%v'", ErrInvalidOrder, o.Type)
	}
	return nil
}

func (e *Exchange) bookOrder(o *order.Order) {
	o.Status = order.Booked
	e.book[o.Symbol] = append(e.book[o.Symbol], o)
}

// fillAgainstBar fills as much of a limit order as the bar's volume cap
// allows, at the limit price itself. The conservative policy never
// improves on the passive price
func (e *Exchange) fillAgainstBar(o *order.Order, bar marketdata.Bar, t time.Time) *fill.Fill {
	amount := decimal.Min(o.Amount, e.settings.MaxFillFraction.Mul(bar.Volume))
	if !amount.IsPositive() {
		return nil
	}
	o.Amount = o.Amount.Sub(amount)
	if o.Amount.IsZero() {
		o.Status = order.Filled
	}
	return e.newFill(o, amount, o.Price, t)
}

func (e *Exchange) newFill(o *order.Order, amount, price decimal.Decimal, t time.Time) *fill.Fill {
	return &fill.Fill{
		Base:       event.Base{Time: t},
		OrderID:    o.ID,
		Symbol:     o.Symbol,
		Side:       o.Side,
		Amount:     amount,
		Price:      price,
		Commission: e.settings.Commission(price, amount),
	}
}

func crossed(o *order.Order, bar marketdata.Bar) bool {
	if o.Side == order.Buy {
		return bar.Low.LessThanOrEqual(o.Price)
	}
	return bar.High.GreaterThanOrEqual(o.Price)
}
