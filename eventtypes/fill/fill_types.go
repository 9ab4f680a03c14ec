package fill

import (
	"github.com/gofrs/uuid"
	"github.com/openquant/backtester/eventtypes/event"
	"github.com/openquant/backtester/eventtypes/order"
	"github.com/shopspring/decimal"
)

// Fill is an event detailing the execution of all or part of an order.
// Fills are immutable once created
type Fill struct {
	event.Base
	OrderID    uuid.UUID       `json:"order-id"`
	Symbol     string          `json:"symbol"`
	Side       order.Side      `json:"side"`
	Amount     decimal.Decimal `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
}
