package stream

// ForEach subscribes to s and calls fn for every element. It returns the
// stream's failure, or the first error returned by fn, which also detaches
// the subscription. ForEach is meant for streams whose producer runs inside
// Subscribe (slices, iterators, channels); a hot stream returns immediately.
func ForEach[T any](s Stream[T], fn func(T) error) error {
	c := &sink[T]{fn: fn}
	sub := s.Subscribe(c)
	sub.Unsubscribe()
	return c.err
}

// Collect gathers every element of s.
func Collect[T any](s Stream[T]) ([]T, error) {
	var out []T
	err := ForEach(s, func(v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

type sink[T any] struct {
	fn      func(T) error
	err     error
	stopped bool
}

func (c *sink[T]) Next(v T) {
	if c.stopped {
		return
	}
	if err := c.fn(v); err != nil {
		c.err = err
		c.stopped = true
	}
}

func (c *sink[T]) Error(err error) {
	c.err = err
	c.stopped = true
}

func (c *sink[T]) Complete() {
	c.stopped = true
}

func (c *sink[T]) Closed() bool {
	return c.stopped
}
