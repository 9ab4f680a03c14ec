package marketdata

import (
	"sort"
)

// GetBar returns the bar for the requested instrument if it traded at this
// timestamp
func (m *MarketData) GetBar(symbol string) (Bar, bool) {
	b, ok := m.Bars[symbol]
	return b, ok
}

// Symbols returns the instruments updating at this timestamp in sorted
// order so iteration over the bundle is deterministic
func (m *MarketData) Symbols() []string {
	symbols := make([]string, 0, len(m.Bars))
	for s := range m.Bars {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// IsMarketData distinguishes the event from order and fill events
func (m *MarketData) IsMarketData() bool {
	return true
}
