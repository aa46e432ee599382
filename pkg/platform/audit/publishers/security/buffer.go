package security

import "sync"

const defaultCapacity = 1024

// ring is a bounded FIFO. A full ring evicts its oldest entry.
type ring[T any] struct {
	mu      sync.Mutex
	items   []T
	next    int
	oldest  int
	size    int
	evicted int64
}

func newRing[T any](capacity int) *ring[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &ring[T]{items: make([]T, capacity)}
}

func (r *ring[T]) push(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size == len(r.items) {
		r.oldest = r.advance(r.oldest)
		r.size--
		r.evicted++
	}
	r.items[r.next] = item
	r.next = r.advance(r.next)
	r.size++
}

// pop removes up to n items, oldest first.
func (r *ring[T]) pop(n int) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	n = min(n, r.size)
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	var zero T
	for i := range out {
		out[i] = r.items[r.oldest]
		r.items[r.oldest] = zero
		r.oldest = r.advance(r.oldest)
	}
	r.size -= n
	return out
}

func (r *ring[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *ring[T]) dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evicted
}

func (r *ring[T]) advance(i int) int {
	return (i + 1) % len(r.items)
}
