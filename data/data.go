package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/openquant/backtester/eventtypes/event"
	"github.com/openquant/backtester/eventtypes/marketdata"
	"github.com/shopspring/decimal"
)

// NewHandler groups the supplied per-instrument bar series into one
// bundled market data event per unique timestamp. Instruments with
// heterogeneous trading calendars are aligned by timestamp union and are
// absent from bundles where they did not trade. Bars are assumed already
// validated by the loading layer
func NewHandler(bars map[string][]marketdata.Bar) (*Handler, error) {
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	grouped := make(map[int64]map[string]marketdata.Bar)
	symbols := make([]string, 0, len(bars))
	for symbol, series := range bars {
		if len(series) == 0 {
			return nil, fmt.Errorf("%w for %v", ErrNoBars, symbol)
		}
		symbols = append(symbols, symbol)
		for i := range series {
			key := series[i].Time.UnixNano()
			if grouped[key] == nil {
				grouped[key] = make(map[string]marketdata.Bar)
			}
			b := series[i]
			b.Symbol = symbol
			grouped[key][symbol] = b
		}
	}
	sort.Strings(symbols)

	keys := make([]int64, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	stream := make([]*marketdata.MarketData, len(keys))
	for i := range keys {
		bundle := grouped[keys[i]]
		stream[i] = &marketdata.MarketData{
			Base: event.Base{Time: bundleTime(bundle)},
			Bars: bundle,
		}
	}
	return &Handler{
		stream:  stream,
		symbols: symbols,
		latest:  make(map[string]marketdata.Bar),
		history: make(map[string][]marketdata.Bar),
	}, nil
}

func bundleTime(bundle map[string]marketdata.Bar) time.Time {
	for _, b := range bundle {
		return b.Time
	}
	return time.Time{}
}

// HasNext reports whether any bundled events remain
func (h *Handler) HasNext() bool {
	return h.offset < len(h.stream)
}

// Next produces the next chronological market data event, advancing the
// point-in-time surface to include it
func (h *Handler) Next() (*marketdata.MarketData, error) {
	if h.offset >= len(h.stream) {
		return nil, ErrExhausted
	}
	ev := h.stream[h.offset]
	h.offset++
	for symbol, bar := range ev.Bars {
		h.latest[symbol] = bar
		h.history[symbol] = append(h.history[symbol], bar)
	}
	return ev, nil
}

// Offset returns how many bundled events have been emitted
func (h *Handler) Offset() int {
	return h.offset
}

// CurrentPrice returns the close of the latest bar already emitted for
// the instrument. It can never return a price from an event still sitting
// in the queue
func (h *Handler) CurrentPrice(symbol string) (decimal.Decimal, error) {
	bar, ok := h.latest[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNoData, symbol)
	}
	return bar.Close, nil
}

// CurrentBar returns the latest bar already emitted for the instrument
func (h *Handler) CurrentBar(symbol string) (marketdata.Bar, error) {
	bar, ok := h.latest[symbol]
	if !ok {
		return marketdata.Bar{}, fmt.Errorf("%w: %v", ErrNoData, symbol)
	}
	return bar, nil
}

// History returns up to lookback already-emitted bars for the
// instrument, most recent last. A lookback <= 0 returns all emitted bars
func (h *Handler) History(symbol string, lookback int) []marketdata.Bar {
	series := h.history[symbol]
	if lookback <= 0 || lookback > len(series) {
		lookback = len(series)
	}
	out := make([]marketdata.Bar, lookback)
	copy(out, series[len(series)-lookback:])
	return out
}

// StreamClose returns the closing prices of every emitted bar for the
// instrument in chronological order
func (h *Handler) StreamClose(symbol string) []decimal.Decimal {
	series := h.history[symbol]
	closes := make([]decimal.Decimal, len(series))
	for i := range series {
		closes[i] = series[i].Close
	}
	return closes
}

// Symbols returns every instrument present in the dataset
func (h *Handler) Symbols() []string {
	out := make([]string, len(h.symbols))
	copy(out, h.symbols)
	return out
}

// Reset rewinds the handler to the start of the dataset
func (h *Handler) Reset() {
	h.offset = 0
	h.latest = make(map[string]marketdata.Bar)
	h.history = make(map[string][]marketdata.Bar)
}
