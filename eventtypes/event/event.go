package event

import (
	"time"
)

// GetTime returns the time the event occurred at
func (b *Base) GetTime() time.Time {
	return b.Time
}

// GetSequence returns the queue-assigned sequence number
func (b *Base) GetSequence() int64 {
	return b.Sequence
}

// SetSequence stamps the tie-break sequence number, called by the event
// queue when the event is first pushed
func (b *Base) SetSequence(s int64) {
	b.Sequence = s
}
