package dollarcostaverage

import (
	"fmt"

	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/strategies/base"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

const (
	// Name is the strategy name
	Name         = "dollarcostaverage"
	orderCashKey = "order-cash"
	description  = `Dollar cost averaging is an investment strategy in which an investor divides up the total amount to be invested across periodic purchases of a target asset in an effort to reduce the impact of volatility on the overall purchase`
)

// Strategy buys a fixed cash amount of every instrument on every bar
type Strategy struct {
	base.Strategy
	orderCash decimal.Decimal
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
// be it definition of terms or to highlight its purpose
func (s *Strategy) Description() string {
	return description
}

// OnData buys orderCash worth of each instrument that traded at this
// timestamp, regardless of price history or current holdings
func (s *Strategy) OnData(ev *marketdata.MarketData, _ data.PriceServer, _ portfolio.Reader) ([]order.Request, error) {
	if ev == nil {
		return nil, common.ErrNilEvent
	}
	var requests []order.Request
	for _, symbol := range s.Symbols() {
		bar, ok := ev.GetBar(symbol)
		if !ok || bar.Close.IsZero() {
			continue
		}
		requests = append(requests, order.Request{
			Symbol: symbol,
			Side:   order.Buy,
			Amount: s.orderCash.Div(bar.Close),
			Type:   order.Market,
		})
	}
	return requests, nil
}

// SetCustomSettings allows a user to modify the cash spent per bar in
// their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case orderCashKey:
			orderCash, ok := v.(float64)
			if !ok || orderCash <= 0 {
				return fmt.Errorf("%w provided order-cash value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.orderCash = decimal.NewFromFloat(orderCash)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.orderCash = decimal.NewFromInt(100)
}
