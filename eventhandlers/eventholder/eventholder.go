package eventholder

import (
	"container/heap"

	"github.com/openquant/backtester/common"
)

// Reset returns the holder to its default state
func (h *Holder) Reset() {
	h.queue = nil
	h.seq = 0
}

// Push inserts an event into the queue, stamping the tie-break sequence
// number. The queue holds no business logic over the events it orders
func (h *Holder) Push(e common.Event) {
	if e == nil {
		return
	}
	if e.GetSequence() == 0 {
		h.seq++
		e.SetSequence(h.seq)
	}
	heap.Push(&h.queue, e)
}

// Pop removes and returns the event with the smallest
// (timestamp, sequence) key
func (h *Holder) Pop() (common.Event, error) {
	if len(h.queue) == 0 {
		return nil, ErrEmptyQueue
	}
	e, ok := heap.Pop(&h.queue).(common.Event)
	if !ok {
		return nil, common.ErrNilEvent
	}
	return e, nil
}

// Peek returns the next event without removing it
func (h *Holder) Peek() (common.Event, error) {
	if len(h.queue) == 0 {
		return nil, ErrEmptyQueue
	}
	return h.queue[0], nil
}

// Len returns the number of events remaining in the queue
func (h *Holder) Len() int {
	return len(h.queue)
}

func (q eventHeap) Len() int {
	return len(q)
}

func (q eventHeap) Less(i, j int) bool {
	ti, tj := q[i].GetTime(), q[j].GetTime()
	if ti.Equal(tj) {
		return q[i].GetSequence() < q[j].GetSequence()
	}
	return ti.Before(tj)
}

func (q eventHeap) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *eventHeap) Push(x interface{}) {
	e, ok := x.(common.Event)
	if !ok {
		return
	}
	*q = append(*q, e)
}

func (q *eventHeap) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
