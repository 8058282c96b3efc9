package stream

// Pair is an element of Zip2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is an element of Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Zip2 emits the i-th elements of a and b together once both have produced
// them. It completes when a completed branch has nothing left buffered and
// fails as soon as either branch fails.
func Zip2[A, B any](a Stream[A], b Stream[B]) Stream[Pair[A, B]] {
	return Create(func(down *Subscriber[Pair[A, B]]) {
		z := newZipper(2, func(row []any) {
			first, _ := row[0].(A)
			second, _ := row[1].(B)
			down.Next(Pair[A, B]{First: first, Second: second})
		}, down.Complete)
		down.OnTeardown(z.release)
		zipBranch(down, z, 0, a)
		zipBranch(down, z, 1, b)
	})
}

// Zip3 is Zip2 for three branches.
func Zip3[A, B, C any](a Stream[A], b Stream[B], c Stream[C]) Stream[Triple[A, B, C]] {
	return Create(func(down *Subscriber[Triple[A, B, C]]) {
		z := newZipper(3, func(row []any) {
			first, _ := row[0].(A)
			second, _ := row[1].(B)
			third, _ := row[2].(C)
			down.Next(Triple[A, B, C]{First: first, Second: second, Third: third})
		}, down.Complete)
		down.OnTeardown(z.release)
		zipBranch(down, z, 0, a)
		zipBranch(down, z, 1, b)
		zipBranch(down, z, 2, c)
	})
}

type zipper struct {
	queues [][]any
	done   []bool
	emit   func([]any)
	finish func()
}

func newZipper(n int, emit func([]any), finish func()) *zipper {
	return &zipper{
		queues: make([][]any, n),
		done:   make([]bool, n),
		emit:   emit,
		finish: finish,
	}
}

func (z *zipper) push(i int, v any) {
	z.queues[i] = append(z.queues[i], v)
	for z.ready() {
		row := make([]any, len(z.queues))
		for j, q := range z.queues {
			row[j] = q[0]
			q[0] = nil
			z.queues[j] = q[1:]
		}
		z.emit(row)
	}
	z.checkDone()
}

func (z *zipper) complete(i int) {
	z.done[i] = true
	z.checkDone()
}

func (z *zipper) ready() bool {
	for _, q := range z.queues {
		if len(q) == 0 {
			return false
		}
	}
	return true
}

func (z *zipper) checkDone() {
	for i, done := range z.done {
		if done && len(z.queues[i]) == 0 {
			z.finish()
			return
		}
	}
}

func (z *zipper) release() {
	for i := range z.queues {
		z.queues[i] = nil
	}
}

func zipBranch[T, R any](down *Subscriber[R], z *zipper, i int, src Stream[T]) {
	if down.Closed() {
		return
	}
	sub := src.Subscribe(&zipInput[T, R]{down: down, z: z, i: i})
	down.OnTeardown(sub.Unsubscribe)
}

type zipInput[T, R any] struct {
	down *Subscriber[R]
	z    *zipper
	i    int
}

func (in *zipInput[T, R]) Next(v T)        { in.z.push(in.i, v) }
func (in *zipInput[T, R]) Error(err error) { in.down.Error(err) }
func (in *zipInput[T, R]) Complete()       { in.z.complete(in.i) }
func (in *zipInput[T, R]) Closed() bool    { return in.down.Closed() }
