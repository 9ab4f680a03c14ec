package rsi

import (
	"fmt"

	"github.com/openquant/backtester/common"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/strategies/base"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"
)

const (
	// Name is the strategy name
	Name         = "rsi"
	rsiPeriodKey = "rsi-period"
	rsiLowKey    = "rsi-low"
	rsiHighKey   = "rsi-high"
	description  = `The relative strength index is a technical indicator used in the analysis of financial markets. It is intended to chart the current and historical strength or weakness of a stock or market based on the closing prices of a recent trading period`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	rsiPeriod    int
	rsiLow       decimal.Decimal
	rsiHigh      decimal.Decimal
	targetWeight decimal.Decimal
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

// OnData goes long an instrument when its RSI is at or below the low
// threshold and exits when it is at or above the high one. Readings
// between the two thresholds leave the position as it stands
func (s *Strategy) OnData(ev *marketdata.MarketData, d data.PriceServer, p portfolio.Reader) ([]order.Request, error) {
	if ev == nil {
		return nil, common.ErrNilEvent
	}
	if d == nil || p == nil {
		return nil, common.ErrNilArguments
	}
	symbols := s.Symbols()
	perSymbol := s.targetWeight.Div(decimal.NewFromInt(int64(len(symbols))))
	targets := make(map[string]decimal.Decimal)
	for _, symbol := range symbols {
		if _, ok := ev.GetBar(symbol); !ok {
			continue
		}
		closes := d.StreamClose(symbol)
		if len(closes) <= s.rsiPeriod {
			continue
		}
		stream := make([]float64, len(closes))
		for i := range closes {
			stream[i] = closes[i].InexactFloat64()
		}
		rsiValues := indicators.RSI(stream, s.rsiPeriod)
		latestRSIValue := decimal.NewFromFloat(rsiValues[len(rsiValues)-1])
		switch {
		case latestRSIValue.GreaterThanOrEqual(s.rsiHigh):
			targets[symbol] = decimal.Zero
		case latestRSIValue.LessThanOrEqual(s.rsiLow):
			targets[symbol] = perSymbol
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return s.RequestsFromTargets(targets, d, p)
}

// SetCustomSettings allows a user to modify the RSI limits in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case rsiHighKey:
			rsiHigh, ok := v.(float64)
			if !ok || rsiHigh <= 0 {
				return fmt.Errorf("%w provided rsi-high value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiHigh = decimal.NewFromFloat(rsiHigh)
		case rsiLowKey:
			rsiLow, ok := v.(float64)
			if !ok || rsiLow <= 0 {
				return fmt.Errorf("%w provided rsi-low value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiLow = decimal.NewFromFloat(rsiLow)
		case rsiPeriodKey:
			rsiPeriod, ok := v.(float64)
			if !ok || rsiPeriod <= 0 {
				return fmt.Errorf("%w provided rsi-period value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiPeriod = int(rsiPeriod)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.rsiHigh = decimal.NewFromInt(70)
	s.rsiLow = decimal.NewFromInt(30)
	s.rsiPeriod = 14
	s.targetWeight = decimal.NewFromInt(1)
}
