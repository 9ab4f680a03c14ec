package base

import (
	"sort"

	"github.com/openquant/backtester/data"
	"github.com/openquant/backtester/eventhandlers/portfolio"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/openquant/backtester/size"
	"github.com/shopspring/decimal"
)

// Strategy is the base implementation of the Handler interface. It owns
// the instrument universe and the sizing seam so concrete strategies only
// express target positions
type Strategy struct {
	symbols     []string
	sizer       size.Sizer
	initialised bool
}

// Initialise stores the instrument universe. It is called exactly once
// per run, before any data is streamed
func (s *Strategy) Initialise(symbols []string) error {
	if s.initialised {
		return ErrAlreadyInitialised
	}
	if len(symbols) == 0 {
		return ErrNoSymbols
	}
	s.symbols = make([]string, len(symbols))
	copy(s.symbols, symbols)
	sort.Strings(s.symbols)
	if s.sizer == nil {
		s.sizer = size.Proportional{}
	}
	s.initialised = true
	return nil
}

// Symbols returns the instrument universe in sorted order
func (s *Strategy) Symbols() []string {
	symbols := make([]string, len(s.symbols))
	copy(symbols, s.symbols)
	return symbols
}

// SetSizer overrides the default proportional sizer
func (s *Strategy) SetSizer(sz size.Sizer) {
	s.sizer = sz
}

// RequestsFromTargets converts target portfolio weights into order
// requests through the configured sizer
func (s *Strategy) RequestsFromTargets(targets map[string]decimal.Decimal, prices data.PriceServer, reader portfolio.Reader) ([]order.Request, error) {
	if s.sizer == nil {
		s.sizer = size.Proportional{}
	}
	return s.sizer.OrderRequests(targets, prices, reader)
}
