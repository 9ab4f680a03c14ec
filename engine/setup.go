package engine

import (
	"github.com/openquant/backtester/config"
	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/exchange"
	"github.com/openquant/backtester/eventhandlers/exchange/slippage"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventhandlers/strategies"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewFromConfig builds a ready-to-run backtest from a validated config
// and a per-instrument bar dataset
func NewFromConfig(cfg config.Config, bars map[string][]marketdata.Bar, log *zap.Logger) (*BackTest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := data.NewHandler(bars)
	if err != nil {
		return nil, err
	}
	strat, err := strategies.LoadStrategyByName(cfg.Strategy.Name)
	if err != nil {
		return nil, err
	}
	if len(cfg.Strategy.CustomSettings) > 0 {
		if err = strat.SetCustomSettings(cfg.Strategy.CustomSettings); err != nil {
			return nil, err
		}
	}
	p, err := portfolio.Setup(cfg.InitialCash)
	if err != nil {
		return nil, err
	}
	ex, err := exchange.Setup(d, exchangeSettings(cfg.Exchange))
	if err != nil {
		return nil, err
	}
	return New(d, strat, p, ex, log)
}

func exchangeSettings(cfg config.ExchangeSettings) exchange.Settings {
	settings := exchange.Settings{
		MaxFillFraction: cfg.MaxFillFraction,
	}
	if cfg.SlippageBasisPoints.IsPositive() {
		settings.Slippage = slippage.FixedBasisPoints{Rate: cfg.SlippageBasisPoints}
	}
	if cfg.CommissionRate.IsPositive() {
		settings.Commission = exchange.RateCommission(decimal.Zero, cfg.CommissionRate)
	}
	return settings
}
