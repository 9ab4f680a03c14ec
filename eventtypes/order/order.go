package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/openquant/backtester/eventtypes/event"
	"github.com/shopspring/decimal"
)

// New creates an order event from a strategy request, assigning a fresh
// identifier and the submission timestamp
func New(req Request, t time.Time) (*Order, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Order{
		Base:   event.Base{Time: t},
		ID:     id,
		Symbol: req.Symbol,
		Side:   req.Side,
		Amount: req.Amount,
		Type:   req.Type,
		Price:  req.Price,
		Status: Pending,
	}, nil
}

// IsOrder distinguishes the event from market data and fill events
func (o *Order) IsOrder() bool {
	return true
}

// GetID returns the order identifier
func (o *Order) GetID() uuid.UUID {
	return o.ID
}

// GetStatus returns the order status
func (o *Order) GetStatus() Status {
	return o.Status
}

// Remaining returns the unfilled quantity
func (o *Order) Remaining() decimal.Decimal {
	return o.Amount
}
