package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Default returns a runnable configuration with conservative simulator
// settings, suitable as a starting point when no config file is supplied
func Default() Config {
	return Config{
		InitialCash: decimal.NewFromInt(100000),
		Strategy: StrategySettings{
			Name: "dollarcostaverage",
		},
		Exchange: ExchangeSettings{
			CommissionRate:      decimal.Zero,
			SlippageBasisPoints: decimal.Zero,
			MaxFillFraction:     decimal.NewFromInt(1),
		},
	}
}

// ReadConfigFromFile loads and validates a run configuration. The file
// format is whatever viper can detect from the extension
func ReadConfigFromFile(path string) (Config, error) {
	cfg := Default()
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("could not read config %v: %w", path, err)
	}
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decimalDecodeHook())); err != nil {
		return Config{}, fmt.Errorf("could not parse config %v: %w", path, err)
	}
	cfg.Strategy.CustomSettings = normaliseSettings(cfg.Strategy.CustomSettings)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normaliseSettings widens numeric custom settings to float64 so strategy
// settings parse the same whether they arrived via YAML, TOML or JSON
func normaliseSettings(settings map[string]any) map[string]any {
	for k, v := range settings {
		switch n := v.(type) {
		case int:
			settings[k] = float64(n)
		case int64:
			settings[k] = float64(n)
		case float32:
			settings[k] = float64(n)
		}
	}
	return settings
}

// Validate checks the configuration before any component is built from it
func (c *Config) Validate() error {
	if c.Strategy.Name == "" {
		return ErrNoStrategyName
	}
	if !c.InitialCash.IsPositive() {
		return ErrBadInitialCash
	}
	if c.Exchange.CommissionRate.IsNegative() || c.Exchange.SlippageBasisPoints.IsNegative() {
		return ErrBadRate
	}
	f := c.Exchange.MaxFillFraction
	if !f.IsPositive() || f.GreaterThan(decimal.NewFromInt(1)) {
		return ErrBadFillFraction
	}
	return nil
}

// decimalDecodeHook lets viper unmarshal numeric and string config values
// straight into decimal fields
func decimalDecodeHook() mapstructure.DecodeHookFuncType {
	decimalType := reflect.TypeOf(decimal.Decimal{})
	return func(_, to reflect.Type, data any) (any, error) {
		if to != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case float64:
			return decimal.NewFromFloat(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case string:
			return decimal.NewFromString(v)
		default:
			return data, nil
		}
	}
}
