package eventholder

import (
	"errors"

	"github.com/openquant/backtester/common"
)

// ErrEmptyQueue is returned when popping or peeking an exhausted queue.
// Observing it anywhere other than the engine's termination check
// indicates a sequencing bug
var ErrEmptyQueue = errors.New("event queue is empty")

// Holder contains the event queue for backtester processing. Events are
// yielded in ascending (timestamp, sequence) order; the sequence number is
// stamped at push time so same-timestamp events pop in insertion order
type Holder struct {
	queue eventHeap
	seq   int64
}

// EventHolder interface details what is expected of an event holder
type EventHolder interface {
	Reset()
	Push(common.Event)
	Pop() (common.Event, error)
	Peek() (common.Event, error)
	Len() int
}

type eventHeap []common.Event
