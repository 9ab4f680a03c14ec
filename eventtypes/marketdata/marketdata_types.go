package marketdata

import (
	"time"

	"github.com/openquant/backtester/eventtypes/event"
	"github.com/shopspring/decimal"
)

// Bar is an OHLCV summary of trading activity for one instrument over one
// time interval
type Bar struct {
	Symbol string          `json:"symbol"`
	Time   time.Time       `json:"timestamp"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

// MarketData bundles every bar sharing a timestamp into a single event.
// Cross-sectional strategies therefore always observe a synchronised
// snapshot of the market; instruments not trading at the timestamp are
// simply absent from Bars
type MarketData struct {
	event.Base
	Bars map[string]Bar `json:"bars"`
}
