package base

import "errors"

var (
	// ErrCustomSettingsUnsupported used when custom settings are found in the run config when they shouldn't be
	ErrCustomSettingsUnsupported = errors.New("custom settings not supported")
	// ErrInvalidCustomSettings used when bad custom settings are found in the run config
	ErrInvalidCustomSettings = errors.New("invalid custom settings in config")
	// ErrStrategyNotFound used when the strategy named in the run config does not exist
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrNoSymbols used when a strategy is initialised without any instruments to trade
	ErrNoSymbols = errors.New("no instruments provided")
	// ErrAlreadyInitialised used when a strategy is initialised twice in one run
	ErrAlreadyInitialised = errors.New("strategy already initialised")
)
