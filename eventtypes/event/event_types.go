package event

import (
	"time"
)

// Base is embedded by every event variant processed by the backtester.
// Events are considered immutable once created, with the exception of the
// sequence number which the event queue assigns on first push
type Base struct {
	Time     time.Time `json:"timestamp"`
	Sequence int64     `json:"sequence"`
}
