package strategies

import (
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/openquant/backtester/size"
)

// Handler defines what is required for the engine to drive a strategy.
// OnData is the only hook invoked during the simulation loop, it receives
// the bundled market data event alongside read-only views of prices and
// the ledger, and answers with zero or more order requests
type Handler interface {
	Name() string
	Description() string
	SetDefaults()
	SetCustomSettings(map[string]any) error
	SetSizer(size.Sizer)
	Initialise(symbols []string) error
	OnData(*marketdata.MarketData, data.PriceServer, portfolio.Reader) ([]order.Request, error)
}
