package stream

import (
	"fmt"

	"github.com/rustyeddy/signals/ring"
)

// Lift builds an operator from a per-subscription setup function. setup runs
// once for every subscription and returns the handler for upstream values;
// state captured by setup lives exactly as long as that subscription.
// Upstream errors and completion are forwarded verbatim. A panic raised by
// the handler terminates the stream with ErrOperatorPanic.
func Lift[In, Out any](setup func(down *Subscriber[Out]) func(In)) Operator[In, Out] {
	return func(src Stream[In]) Stream[Out] {
		return Create(func(down *Subscriber[Out]) {
			next := setup(down)
			up := src.Subscribe(&relay[In, Out]{down: down, next: next})
			down.OnTeardown(up.Unsubscribe)
		})
	}
}

type relay[In, Out any] struct {
	down *Subscriber[Out]
	next func(In)
}

func (r *relay[In, Out]) Next(v In) {
	defer func() {
		if p := recover(); p != nil {
			r.down.Error(fmt.Errorf("%w: %v", ErrOperatorPanic, p))
		}
	}()
	r.next(v)
}

func (r *relay[In, Out]) Error(err error) { r.down.Error(err) }
func (r *relay[In, Out]) Complete()       { r.down.Complete() }
func (r *relay[In, Out]) Closed() bool    { return r.down.Closed() }

// Map applies fn to every element.
func Map[In, Out any](fn func(In) Out) Operator[In, Out] {
	return Lift(func(down *Subscriber[Out]) func(In) {
		return func(v In) {
			down.Next(fn(v))
		}
	})
}

// TryMap applies fn to every element; the first error terminates the stream.
func TryMap[In, Out any](fn func(In) (Out, error)) Operator[In, Out] {
	return Lift(func(down *Subscriber[Out]) func(In) {
		return func(v In) {
			out, err := fn(v)
			if err != nil {
				down.Error(err)
				return
			}
			down.Next(out)
		}
	})
}

// Filter forwards the elements for which keep returns true.
func Filter[T any](keep func(T) bool) Operator[T, T] {
	return Lift(func(down *Subscriber[T]) func(T) {
		return func(v T) {
			if keep(v) {
				down.Next(v)
			}
		}
	})
}

// Skip drops the first n elements. A non-positive n skips nothing.
func Skip[T any](n int) Operator[T, T] {
	return Lift(func(down *Subscriber[T]) func(T) {
		seen := 0
		return func(v T) {
			if seen < n {
				seen++
				return
			}
			down.Next(v)
		}
	})
}

// Take forwards the first n elements then completes and detaches upstream.
func Take[T any](n int) Operator[T, T] {
	if n <= 0 {
		return func(Stream[T]) Stream[T] { return Empty[T]() }
	}
	return Lift(func(down *Subscriber[T]) func(T) {
		seen := 0
		return func(v T) {
			seen++
			down.Next(v)
			if seen >= n {
				down.Complete()
			}
		}
	})
}

// Tap calls fn for every element and forwards it unchanged.
func Tap[T any](fn func(T)) Operator[T, T] {
	return Lift(func(down *Subscriber[T]) func(T) {
		return func(v T) {
			fn(v)
			down.Next(v)
		}
	})
}

// Window emits the last size elements, oldest first, once size elements have
// arrived and then after every further element. Incomplete windows are never
// emitted, including on completion. Each emitted slice is a fresh copy.
func Window[T any](size int) Operator[T, []T] {
	if size <= 0 {
		err := fmt.Errorf("%w: %d", ErrInvalidWindow, size)
		return func(Stream[T]) Stream[[]T] { return Throw[[]T](err) }
	}
	return Lift(func(down *Subscriber[[]T]) func(T) {
		buf := ring.New[T](size)
		down.OnTeardown(buf.Reset)
		return func(v T) {
			buf.Push(v)
			if buf.Full() {
				down.Next(buf.Slice())
			}
		}
	})
}

// Observe calls hooks for every notification and forwards it unchanged. Unlike
// Tap it also sees failure and completion.
func Observe[T any](hooks Funcs[T]) Operator[T, T] {
	return func(src Stream[T]) Stream[T] {
		return Create(func(down *Subscriber[T]) {
			up := src.Subscribe(&observer[T]{down: down, hooks: hooks})
			down.OnTeardown(up.Unsubscribe)
		})
	}
}

type observer[T any] struct {
	down  *Subscriber[T]
	hooks Funcs[T]
}

func (o *observer[T]) Next(v T) {
	if o.down.Closed() {
		return
	}
	o.hooks.Next(v)
	o.down.Next(v)
}

func (o *observer[T]) Error(err error) {
	if o.down.Closed() {
		return
	}
	o.hooks.Error(err)
	o.down.Error(err)
}

func (o *observer[T]) Complete() {
	if o.down.Closed() {
		return
	}
	o.hooks.Complete()
	o.down.Complete()
}

func (o *observer[T]) Closed() bool { return o.down.Closed() }
