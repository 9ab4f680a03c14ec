package order

import (
	"github.com/gofrs/uuid"
	"github.com/openquant/backtester/eventtypes/event"
	"github.com/shopspring/decimal"
)

// Side dictates the direction of an order
type Side string

const (
	// Buy side
	Buy Side = "BUY"
	// Sell side
	Sell Side = "SELL"
)

// Type describes the execution style of an order
type Type string

const (
	// Market orders execute at the prevailing reference price
	Market Type = "MARKET"
	// Limit orders execute at the limit price or not at all
	Limit Type = "LIMIT"
)

// Status describes where an order sits in its lifecycle. It is mutated
// only by the execution simulator once the order has been submitted
type Status string

const (
	// Pending orders have been created but not yet assessed
	Pending Status = "PENDING"
	// Booked limit orders rest on the simulator's book awaiting a cross
	Booked Status = "BOOKED"
	// Filled orders have no remaining quantity
	Filled Status = "FILLED"
	// Cancelled orders were removed from the book before filling
	Cancelled Status = "CANCELLED"
)

// Request is a strategy's ask for an order. The engine converts requests
// into Order events before they are submitted to the execution simulator
type Request struct {
	Symbol string          `json:"symbol"`
	Side   Side            `json:"side"`
	Amount decimal.Decimal `json:"amount"`
	Type   Type            `json:"type"`
	Price  decimal.Decimal `json:"price,omitempty"`
}

// Order contains all details for an order event. Amount holds the
// remaining unfilled quantity while the order rests on the book
type Order struct {
	event.Base
	ID       uuid.UUID       `json:"id"`
	Symbol   string          `json:"symbol"`
	Side     Side            `json:"side"`
	Amount   decimal.Decimal `json:"amount"`
	Type     Type            `json:"type"`
	Price    decimal.Decimal `json:"price,omitempty"`
	Status   Status          `json:"status"`
}
