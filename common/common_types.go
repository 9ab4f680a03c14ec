package common

import (
	"errors"
	"time"
)

var (
	// ErrNilArguments is a common error response to highlight that nils were passed in
	// when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it shouldn't have
	ErrNilEvent = errors.New("nil event received")
)

// Event is implemented by everything that travels through the event queue.
// The sequence number is stamped by the queue on first push and breaks
// ties between events sharing a timestamp
type Event interface {
	GetTime() time.Time
	GetSequence() int64
	SetSequence(int64)
}
