package config

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoStrategyName is returned when the config does not name a strategy
	ErrNoStrategyName = errors.New("no strategy name provided")
	// ErrBadInitialCash is returned when the starting balance is not positive
	ErrBadInitialCash = errors.New("initial cash must be positive")
	// ErrBadFillFraction is returned when the volume participation cap is
	// outside (0, 1]
	ErrBadFillFraction = errors.New("max fill fraction must be within (0, 1]")
	// ErrBadRate is returned when a commission or slippage rate is negative
	ErrBadRate = errors.New("rates cannot be negative")
)

// StrategySettings names the strategy to run and carries its free-form
// settings, which the strategy itself validates on load
type StrategySettings struct {
	Name           string         `mapstructure:"name"`
	CustomSettings map[string]any `mapstructure:"custom-settings"`
}

// ExchangeSettings tunes the execution simulator
type ExchangeSettings struct {
	CommissionRate      decimal.Decimal `mapstructure:"commission-rate"`
	SlippageBasisPoints decimal.Decimal `mapstructure:"slippage-basis-points"`
	MaxFillFraction     decimal.Decimal `mapstructure:"max-fill-fraction"`
}

// Config is everything a single backtest run needs beyond the dataset
type Config struct {
	InitialCash decimal.Decimal  `mapstructure:"initial-cash"`
	Strategy    StrategySettings `mapstructure:"strategy"`
	Exchange    ExchangeSettings `mapstructure:"exchange"`
}
