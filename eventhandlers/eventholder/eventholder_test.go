package eventholder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/backtester/eventtypes/event"
)

func TestPopEmpty(t *testing.T) {
	t.Parallel()
	h := Holder{}
	_, err := h.Pop()
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("received: %v, expected: %v", err, ErrEmptyQueue)
	}
	_, err = h.Peek()
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("received: %v, expected: %v", err, ErrEmptyQueue)
	}
}

func TestChronologicalPops(t *testing.T) {
	t.Parallel()
	h := Holder{}
	tt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	// push out of timestamp order
	third := &event.Base{Time: tt.Add(2 * time.Hour)}
	first := &event.Base{Time: tt}
	second := &event.Base{Time: tt.Add(time.Hour)}
	h.Push(third)
	h.Push(first)
	h.Push(second)
	require.Equal(t, 3, h.Len())

	e, err := h.Pop()
	require.NoError(t, err)
	assert.Equal(t, tt, e.GetTime())
	e, err = h.Pop()
	require.NoError(t, err)
	assert.Equal(t, tt.Add(time.Hour), e.GetTime())
	e, err = h.Pop()
	require.NoError(t, err)
	assert.Equal(t, tt.Add(2*time.Hour), e.GetTime())
	assert.Zero(t, h.Len())
}

func TestSameTimestampTieBreak(t *testing.T) {
	t.Parallel()
	h := Holder{}
	tt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	events := make([]*event.Base, 10)
	for i := range events {
		events[i] = &event.Base{Time: tt}
		h.Push(events[i])
	}
	for i := range events {
		e, err := h.Pop()
		require.NoError(t, err)
		assert.Same(t, events[i], e, "same-timestamp events must pop in push order")
	}
}

func TestInterleavedTimestamps(t *testing.T) {
	t.Parallel()
	h := Holder{}
	tt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	h.Push(&event.Base{Time: tt.Add(time.Hour)})
	h.Push(&event.Base{Time: tt})
	h.Push(&event.Base{Time: tt.Add(time.Hour)})
	h.Push(&event.Base{Time: tt})

	var lastTime time.Time
	var lastSeq int64
	for h.Len() > 0 {
		e, err := h.Pop()
		require.NoError(t, err)
		if e.GetTime().Equal(lastTime) {
			assert.Greater(t, e.GetSequence(), lastSeq)
		} else {
			assert.True(t, e.GetTime().After(lastTime))
		}
		lastTime = e.GetTime()
		lastSeq = e.GetSequence()
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	t.Parallel()
	h := Holder{}
	h.Push(&event.Base{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)})
	p, err := h.Peek()
	require.NoError(t, err)
	e, err := h.Pop()
	require.NoError(t, err)
	assert.Same(t, p, e)
	assert.Zero(t, h.Len())
}

func TestReset(t *testing.T) {
	t.Parallel()
	h := Holder{}
	h.Push(&event.Base{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)})
	h.Reset()
	assert.Zero(t, h.Len())
	_, err := h.Pop()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}
