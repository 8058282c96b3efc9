// Package ring provides a fixed-capacity sliding buffer. Pushing into a full
// ring evicts the oldest element, which is the window discipline used by
// moving averages and windowed operators.
package ring

// Ring keeps the most recent Cap() elements in arrival order.
// It is not safe for concurrent use; operators own their ring exclusively.
type Ring[T any] struct {
	data  []T
	front int
	size  int
}

// New creates a ring with the given capacity. Capacity below 1 is treated as 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{data: make([]T, capacity)}
}

// Push appends v. When the ring is full the oldest element is evicted and
// returned with evicted=true.
func (r *Ring[T]) Push(v T) (old T, evicted bool) {
	capacity := len(r.data)
	if r.size == capacity {
		old = r.data[r.front]
		r.data[r.front] = v
		r.front = (r.front + 1) % capacity
		return old, true
	}
	r.data[(r.front+r.size)%capacity] = v
	r.size++
	return old, false
}

// At returns the i-th oldest element. Negative indexes count from the newest
// (-1 is the most recent). ok is false when i is out of range.
func (r *Ring[T]) At(i int) (v T, ok bool) {
	if i < 0 {
		i = r.size + i
	}
	if i < 0 || i >= r.size {
		return v, false
	}
	return r.data[(r.front+i)%len(r.data)], true
}

// Oldest is At(0).
func (r *Ring[T]) Oldest() (T, bool) { return r.At(0) }

// Newest is At(-1).
func (r *Ring[T]) Newest() (T, bool) { return r.At(-1) }

func (r *Ring[T]) Len() int   { return r.size }
func (r *Ring[T]) Cap() int   { return len(r.data) }
func (r *Ring[T]) Full() bool { return r.size == len(r.data) }

// Slice copies the contents, oldest first.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.data[(r.front+i)%len(r.data)]
	}
	return out
}

// Reset drops all elements and releases references to them.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.data {
		r.data[i] = zero
	}
	r.front = 0
	r.size = 0
}
