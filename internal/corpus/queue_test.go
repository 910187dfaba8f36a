package corpus

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

func newTestQueue(capacity int) *Queue {
	return NewQueue(capacity, rand.New(rand.NewPCG(1, 2)))
}

func TestQueueSeedKeepsMostRecent(t *testing.T) {
	q := newTestQueue(3)
	q.Seed([]string{"a", "b", "c", "d", "e"}, 3)

	got := q.Snapshot()
	want := []string{"c", "d", "e"}
	if !slices.Equal(got, want) {
		t.Fatalf("Snapshot() = %v, want %v", got, want)
	}
}

func TestQueueSeedCollapsesDuplicates(t *testing.T) {
	q := newTestQueue(10)
	q.Seed([]string{"1+1", "2", "1+1", "3"}, 0)

	got := q.Snapshot()
	want := []string{"1+1", "2", "3"}
	if !slices.Equal(got, want) {
		t.Fatalf("Snapshot() = %v, want %v", got, want)
	}
}

func TestQueueSampleEmpty(t *testing.T) {
	q := newTestQueue(4)
	if s, ok := q.Sample(); ok {
		t.Fatalf("Sample() on empty queue = %q, true", s)
	}
}

func TestQueueSampleReturnsMember(t *testing.T) {
	q := newTestQueue(8)
	q.Seed([]string{"x", "y", "z"}, 0)
	seen := make(map[string]bool)
	for range 200 {
		s, ok := q.Sample()
		if !ok {
			t.Fatal("Sample() reported empty queue")
		}
		if !q.Contains(s) {
			t.Fatalf("Sample() = %q, not in queue", s)
		}
		seen[s] = true
	}
	if len(seen) != 3 {
		t.Errorf("Sample() visited %d distinct seeds, want 3", len(seen))
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d after sampling, want 3", q.Len())
	}
}

func TestQueueOfferRejectsDuplicate(t *testing.T) {
	q := newTestQueue(4)
	if !q.Offer("a", 4) {
		t.Fatal("first Offer rejected")
	}
	if q.Offer("a", 4) {
		t.Fatal("duplicate Offer admitted")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueueOfferRespectsThreshold(t *testing.T) {
	q := newTestQueue(10)
	q.Seed([]string{"a", "b", "c"}, 0)
	if q.Offer("d", 3) {
		t.Fatal("Offer admitted at threshold")
	}
	if !q.Offer("d", 4) {
		t.Fatal("Offer rejected below threshold")
	}
}

func TestQueueFIFOEviction(t *testing.T) {
	q := newTestQueue(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		if !q.Push(s) {
			t.Fatalf("Push(%q) rejected", s)
		}
	}
	got := q.Snapshot()
	want := []string{"c", "d", "e"}
	if !slices.Equal(got, want) {
		t.Fatalf("Snapshot() = %v, want %v", got, want)
	}
	// evicted values may be re-admitted later
	if !q.Push("a") {
		t.Fatal("re-admitting evicted value rejected")
	}
	if got := q.Snapshot(); !slices.Equal(got, []string{"d", "e", "a"}) {
		t.Fatalf("Snapshot() = %v after re-admit", got)
	}
}

func TestQueueNeverExceedsCapacity(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 7))
	for _, capacity := range []int{1, 2, 5, 17} {
		q := NewQueue(capacity, rnd)
		for i := range 500 {
			value := fmt.Sprintf("v%d", rnd.IntN(40))
			threshold := rnd.IntN(capacity*2+1) - 1
			q.Offer(value, threshold)
			if q.Len() > capacity {
				t.Fatalf("capacity %d: Len() = %d after %d offers", capacity, q.Len(), i+1)
			}
		}
	}
}

func TestQueueConcurrentOffers(t *testing.T) {
	q := NewQueue(50, nil)
	done := make(chan struct{})
	for w := range 8 {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := range 200 {
				q.Push(fmt.Sprintf("%d-%d", w, i))
				q.Sample()
			}
		}(w)
	}
	for range 8 {
		<-done
	}
	if q.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", q.Len())
	}
}
