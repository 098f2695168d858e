package event

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// OverflowPolicy selects which event is lost when a full queue receives a push.
type OverflowPolicy int

const (
	// DropNewest discards the event being pushed. The producer never writes
	// the read index, so the ring is strictly single-producer/single-consumer.
	DropNewest OverflowPolicy = iota
	// DropOldest discards the oldest queued event to make room. The producer
	// advances the read index with a compare-and-swap that races safely with
	// the consumer.
	DropOldest
)

func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "drop-newest"
	case DropOldest:
		return "drop-oldest"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy accepts "drop-newest" and "drop-oldest" (also with
// underscores or without the prefix).
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", "drop-newest", "newest":
		return DropNewest, nil
	case "drop-oldest", "oldest":
		return DropOldest, nil
	default:
		return DropNewest, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *OverflowPolicy) UnmarshalText(text []byte) error {
	v, err := ParseOverflowPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p OverflowPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// DefaultCapacity is the queue size used when none is configured.
const DefaultCapacity = 64

type entry struct {
	ev Event
}

// Queue is a fixed-capacity ring of events safe for one producer goroutine
// and one consumer goroutine running concurrently. Its length never exceeds
// its capacity.
type Queue struct {
	slots  []atomic.Pointer[entry]
	policy OverflowPolicy

	head    atomic.Uint64 // next slot to read
	tail    atomic.Uint64 // next slot to write
	dropped atomic.Uint64
}

// NewQueue returns an empty queue. A capacity below one is raised to one.
func NewQueue(capacity int, policy OverflowPolicy) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		slots:  make([]atomic.Pointer[entry], capacity),
		policy: policy,
	}
}

// Cap returns the fixed capacity.
func (q *Queue) Cap() int {
	return len(q.slots)
}

// Policy returns the overflow policy.
func (q *Queue) Policy() OverflowPolicy {
	return q.policy
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	for {
		h := q.head.Load()
		t := q.tail.Load()
		if h <= t {
			return int(t - h)
		}
	}
}

// Dropped returns how many events overflow has discarded.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Push enqueues ev. It must only be called from the producer.
//
// With DropNewest a full queue rejects ev and Push returns false. With
// DropOldest the oldest event is discarded instead and Push returns true.
func (q *Queue) Push(ev Event) bool {
	if ev == nil {
		return false
	}
	n := uint64(len(q.slots))
	t := q.tail.Load()
	for {
		h := q.head.Load()
		if t-h < n {
			break
		}
		if q.policy == DropNewest {
			q.dropped.Add(1)
			return false
		}
		if q.head.CompareAndSwap(h, h+1) {
			q.dropped.Add(1)
			break
		}
	}
	q.slots[t%n].Store(&entry{ev: ev})
	q.tail.Store(t + 1)
	return true
}

// Pop dequeues the oldest event. It must only be called from the consumer.
func (q *Queue) Pop() (Event, bool) {
	n := uint64(len(q.slots))
	for {
		h := q.head.Load()
		if h == q.tail.Load() {
			return nil, false
		}
		e := q.slots[h%n].Load()
		if q.head.CompareAndSwap(h, h+1) {
			return e.ev, true
		}
	}
}

// Drain pops at most max events (all currently queued when max <= 0) and
// hands each to fn in FIFO order. It returns the number handed out. Events
// pushed while draining beyond the limit stay queued for the next call.
func (q *Queue) Drain(max int, fn func(Event)) int {
	if max <= 0 {
		max = q.Len()
	}
	count := 0
	for count < max {
		ev, ok := q.Pop()
		if !ok {
			break
		}
		fn(ev)
		count++
	}
	return count
}
