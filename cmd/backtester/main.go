package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/openquant/backtester/config"
	"github.com/openquant/backtester/data/csv"
	"github.com/openquant/backtester/engine"
	"github.com/openquant/backtester/eventhandlers/strategies"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "replay historical bar data through a trading strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a run configuration file",
			},
			&cli.StringSliceFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "instrument dataset as symbol=bars.csv, repeatable",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every fill as it happens",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "strategies",
				Usage:  "list the available strategies",
				Action: listStrategies,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is unactionable

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		if cfg, err = config.ReadConfigFromFile(path); err != nil {
			return err
		}
	}

	entries := c.StringSlice("data")
	if len(entries) == 0 {
		return cli.Exit("at least one --data symbol=bars.csv is required", 1)
	}
	bars := make(map[string][]marketdata.Bar, len(entries))
	for _, entry := range entries {
		symbol, path, ok := strings.Cut(entry, "=")
		if !ok || symbol == "" {
			return fmt.Errorf("invalid --data value %q, want symbol=path", entry)
		}
		if bars[symbol], err = csv.BarsFromFile(symbol, path); err != nil {
			return err
		}
	}

	bt, err := engine.NewFromConfig(cfg, bars, logger)
	if err != nil {
		return err
	}
	results, err := bt.Run()
	if err != nil {
		return err
	}
	printResults(results)
	return nil
}

func listStrategies(*cli.Context) error {
	for _, s := range strategies.GetSupportedStrategies() {
		fmt.Printf("%-20s %s\n", s.Name(), s.Description())
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func printResults(r *engine.Results) {
	fmt.Printf("strategy:      %v\n", r.StrategyName)
	fmt.Printf("initial cash:  %v\n", r.InitialCash)
	fmt.Printf("final cash:    %v\n", r.FinalCash)
	fmt.Printf("final equity:  %v\n", r.FinalEquity)
	fmt.Printf("realized pnl:  %v\n", r.RealizedPNL)
	fmt.Printf("fills:         %v\n", len(r.Fills))
	for i := range r.Positions {
		if r.Positions[i].IsFlat() {
			continue
		}
		fmt.Printf("open position: %v %v @ %v\n",
			r.Positions[i].Symbol,
			r.Positions[i].Amount,
			r.Positions[i].AverageEntryPrice)
	}
	if len(r.EquityCurve) > 0 {
		ret := r.FinalEquity.Sub(r.InitialCash).Div(r.InitialCash).Mul(decimal.NewFromInt(100))
		fmt.Printf("return:        %v%%\n", ret.Round(4))
	}
}
