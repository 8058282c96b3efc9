package stream

import "context"

// Of emits its arguments then completes.
func Of[T any](items ...T) Stream[T] {
	return FromSlice(items)
}

// FromSlice emits every element of items in order then completes.
func FromSlice[T any](items []T) Stream[T] {
	return Create(func(s *Subscriber[T]) {
		for _, v := range items {
			if s.Closed() {
				return
			}
			s.Next(v)
		}
		s.Complete()
	})
}

// FromIterator pulls elements from next until it reports ok=false (complete)
// or an error (failure).
func FromIterator[T any](next func() (v T, ok bool, err error)) Stream[T] {
	return Create(func(s *Subscriber[T]) {
		for !s.Closed() {
			v, ok, err := next()
			if err != nil {
				s.Error(err)
				return
			}
			if !ok {
				s.Complete()
				return
			}
			s.Next(v)
		}
	})
}

// FromChannel emits values received on ch until it is closed (complete) or
// ctx is done (failure with ctx.Err()). Subscribe blocks while it runs.
func FromChannel[T any](ctx context.Context, ch <-chan T) Stream[T] {
	return Create(func(s *Subscriber[T]) {
		for !s.Closed() {
			select {
			case <-ctx.Done():
				s.Error(ctx.Err())
				return
			case v, ok := <-ch:
				if !ok {
					s.Complete()
					return
				}
				s.Next(v)
			}
		}
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) Stream[T] {
	return Create(func(s *Subscriber[T]) {
		s.Error(err)
	})
}

// Empty completes immediately.
func Empty[T any]() Stream[T] {
	return Create(func(s *Subscriber[T]) {
		s.Complete()
	})
}
