package corpus

import (
	"math/rand/v2"
	"sync"
)

// DefaultCapacity is the hard structural bound used when none is configured.
const DefaultCapacity = 1000

// Queue is a bounded, order-sensitive collection of seeds.
// Appends are conditional on non-membership; when full, the oldest seed is
// evicted first. Safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	items    []string
	index    map[string]struct{}
	capacity int
	rnd      *rand.Rand
}

// NewQueue returns an empty queue bounded at capacity.
// rnd drives Sample; a nil rnd uses the global source.
func NewQueue(capacity int, rnd *rand.Rand) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		items:    make([]string, 0, min(capacity, 64)),
		index:    make(map[string]struct{}, min(capacity, 64)),
		capacity: capacity,
		rnd:      rnd,
	}
}

// Seed replaces the queue contents with initial, keeping the last capacity
// items when initial is longer. Repeated values keep their first surviving
// occurrence.
func (q *Queue) Seed(initial []string, capacity int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if capacity > 0 {
		q.capacity = capacity
	}
	if len(initial) > q.capacity {
		initial = initial[len(initial)-q.capacity:]
	}
	q.items = q.items[:0]
	clear(q.index)
	for _, s := range initial {
		if _, ok := q.index[s]; ok {
			continue
		}
		q.items = append(q.items, s)
		q.index[s] = struct{}{}
	}
}

// Sample returns a uniformly random seed without removing it.
// ok is false when the queue is empty.
func (q *Queue) Sample() (seed string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}
	var i int
	if q.rnd != nil {
		i = q.rnd.IntN(len(q.items))
	} else {
		i = rand.IntN(len(q.items))
	}
	return q.items[i], true
}

// Offer appends value at the tail when it is not already present and the
// current size is below threshold. A threshold that is not positive or not
// below the hard capacity leaves admission ungated, and the head is evicted
// to make room at hard capacity. It reports whether value was admitted.
func (q *Queue) Offer(value string, threshold int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if threshold > 0 && threshold < q.capacity && len(q.items) >= threshold {
		return false
	}
	if _, ok := q.index[value]; ok {
		return false
	}
	if len(q.items) >= q.capacity {
		head := q.items[0]
		delete(q.index, head)
		q.items[0] = ""
		q.items = q.items[1:]
	}
	q.items = append(q.items, value)
	q.index[value] = struct{}{}
	return true
}

// Push appends value with FIFO eviction and no admission threshold.
func (q *Queue) Push(value string) bool {
	return q.Offer(value, 0)
}

// Len returns the current number of seeds.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Cap returns the hard capacity.
func (q *Queue) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capacity
}

// Contains reports whether value is currently in the queue.
func (q *Queue) Contains(value string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.index[value]
	return ok
}

// Snapshot returns a copy of the seeds in FIFO order (oldest first).
func (q *Queue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}
