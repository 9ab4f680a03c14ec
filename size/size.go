package size

import (
	"fmt"
	"sort"

	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

// OrderRequests emits one market order request per instrument whose held
// amount differs from the target weight of current equity. Targets are
// processed in sorted symbol order for determinism, instruments absent
// from the target map are left untouched
func (p Proportional) OrderRequests(targets map[string]decimal.Decimal, prices data.PriceServer, reader portfolio.Reader) ([]order.Request, error) {
	if prices == nil || reader == nil {
		return nil, common.ErrNilArguments
	}
	symbols := make([]string, 0, len(targets))
	for s := range targets {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	equity := equityAt(prices, reader)
	var requests []order.Request
	for _, symbol := range symbols {
		price, err := prices.CurrentPrice(symbol)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoPrice, symbol)
		}
		desired := targets[symbol].Mul(equity).Div(price)
		var held decimal.Decimal
		if pos, ok := reader.GetPosition(symbol); ok {
			held = pos.Amount
		}
		delta := desired.Sub(held).Round(8)
		if delta.IsZero() {
			continue
		}
		req := order.Request{
			Symbol: symbol,
			Side:   order.Buy,
			Amount: delta,
			Type:   order.Market,
		}
		if delta.IsNegative() {
			req.Side = order.Sell
			req.Amount = delta.Neg()
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// equityAt marks the current book against the latest emitted prices,
// falling back to entry price for instruments that have not traded yet
func equityAt(prices data.PriceServer, reader portfolio.Reader) decimal.Decimal {
	equity := reader.Cash()
	for _, pos := range reader.Positions() {
		if pos.IsFlat() {
			continue
		}
		price, err := prices.CurrentPrice(pos.Symbol)
		if err != nil {
			price = pos.AverageEntryPrice
		}
		equity = equity.Add(pos.MarketValue(price))
	}
	return equity
}
