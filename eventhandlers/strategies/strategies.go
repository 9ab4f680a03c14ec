package strategies

import (
	"fmt"
	"strings"

	"github.com/openquant/backtester/eventhandlers/strategies/base"
	"github.com/openquant/backtester/eventhandlers/strategies/dollarcostaverage"
	"github.com/openquant/backtester/eventhandlers/strategies/rsi"
	"github.com/openquant/backtester/eventhandlers/strategies/smacrossover"
)

// LoadStrategyByName returns the requested strategy with its default
// settings applied
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetSupportedStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		strats[i].SetDefaults()
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w: %v", base.ErrStrategyNotFound, name)
}

// GetSupportedStrategies returns a fresh instance of every strategy the
// backtester can run
func GetSupportedStrategies() []Handler {
	return []Handler{
		new(dollarcostaverage.Strategy),
		new(smacrossover.Strategy),
		new(rsi.Strategy),
	}
}
