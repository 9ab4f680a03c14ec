package smacrossover

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
	Name          = "smacrossover"
	fastPeriodKey = "fast-period"
	slowPeriodKey = "slow-period"
	weightKey     = "target-weight"
	description   = `The simple moving average crossover goes long an instrument when its fast moving average rises above its slow moving average, and exits the position when the fast average falls back below the slow one`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	fastPeriod   int
	slowPeriod   int
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

// OnData compares the fast and slow moving averages of each instrument
// that traded at this timestamp. A fast average above the slow one maps to
// a long target weight, below it maps to flat. Instruments without enough
// history are left untouched
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
		if len(closes) <= s.slowPeriod {
			continue
		}
		stream := toFloats(closes)
		fast := indicators.SMA(stream, s.fastPeriod)
		slow := indicators.SMA(stream, s.slowPeriod)
		latestFast := fast[len(fast)-1]
		latestSlow := slow[len(slow)-1]
		switch {
		case latestFast > latestSlow:
			targets[symbol] = perSymbol
		case latestFast < latestSlow:
			targets[symbol] = decimal.Zero
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return s.RequestsFromTargets(targets, d, p)
}

// SetCustomSettings allows a user to modify the moving average periods and
// the long target weight in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case fastPeriodKey:
			fastPeriod, ok := v.(float64)
			if !ok || fastPeriod <= 0 {
				return fmt.Errorf("%w provided fast-period value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.fastPeriod = int(fastPeriod)
		case slowPeriodKey:
			slowPeriod, ok := v.(float64)
			if !ok || slowPeriod <= 0 {
				return fmt.Errorf("%w provided slow-period value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.slowPeriod = int(slowPeriod)
		case weightKey:
			weight, ok := v.(float64)
			if !ok || weight <= 0 {
				return fmt.Errorf("%w provided target-weight value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.targetWeight = decimal.NewFromFloat(weight)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	if s.fastPeriod >= s.slowPeriod {
		return fmt.Errorf("%w fast-period %v must be below slow-period %v", base.ErrInvalidCustomSettings, s.fastPeriod, s.slowPeriod)
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.fastPeriod = 10
	s.slowPeriod = 30
	s.targetWeight = decimal.NewFromInt(1)
}

func toFloats(d []decimal.Decimal) []float64 {
	resp := make([]float64, len(d))
	for i := range d {
		resp[i] = d[i].InexactFloat64()
	}
	return resp
}
