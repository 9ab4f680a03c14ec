package size

import (
	"errors"

	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

// ErrNoPrice is returned when an instrument cannot be sized because no
// bar for it has been emitted yet
var ErrNoPrice = errors.New("cannot size order without an emitted price")

// Sizer converts a strategy's raw target positions into executable order
// requests. This is a simplified stand-in for a full portfolio
// construction and risk pipeline and is injected so it can be replaced
// without touching strategy code
type Sizer interface {
	OrderRequests(targets map[string]decimal.Decimal, prices data.PriceServer, reader portfolio.Reader) ([]order.Request, error)
}

// Proportional sizes each instrument to its target weight of current
// equity. A weight of 1 commits the whole portfolio, 0 exits, negative
// weights go short
type Proportional struct{}
