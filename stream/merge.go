package stream

// Merge forwards the elements of every source as they arrive. It completes
// once all sources completed and fails as soon as one fails. Sources are
// subscribed in order, so merging branches of a shared source interleaves
// their outputs per input element.
func Merge[T any](sources ...Stream[T]) Stream[T] {
	return Create(func(down *Subscriber[T]) {
		remaining := len(sources)
		if remaining == 0 {
			down.Complete()
			return
		}
		for _, src := range sources {
			if down.Closed() {
				return
			}
			sub := src.Subscribe(&mergeInput[T]{down: down, remaining: &remaining})
			down.OnTeardown(sub.Unsubscribe)
		}
	})
}

type mergeInput[T any] struct {
	down      *Subscriber[T]
	remaining *int
}

func (m *mergeInput[T]) Next(v T)        { m.down.Next(v) }
func (m *mergeInput[T]) Error(err error) { m.down.Error(err) }
func (m *mergeInput[T]) Closed() bool    { return m.down.Closed() }

func (m *mergeInput[T]) Complete() {
	*m.remaining--
	if *m.remaining == 0 {
		m.down.Complete()
	}
}
