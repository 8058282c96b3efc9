package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// counting returns a source over items and a pointer to the number of
// elements it has produced so far.
func counting(items []int) (Stream[int], *int) {
	pulled := 0
	src := Create(func(s *Subscriber[int]) {
		for _, v := range items {
			if s.Closed() {
				return
			}
			pulled++
			s.Next(v)
		}
		s.Complete()
	})
	return src, &pulled
}

func TestCollect(t *testing.T) {
	got, err := Collect(Of(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = Collect(Empty[int]())
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Collect(Stream[int]{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestObserverGrammar(t *testing.T) {
	var events []string
	src := Create(func(s *Subscriber[int]) {
		s.Next(1)
		s.Complete()
		s.Next(2)
		s.Error(errBoom)
		s.Complete()
	})
	src.Subscribe(Funcs[int]{
		OnNext:     func(int) { events = append(events, "next") },
		OnError:    func(error) { events = append(events, "error") },
		OnComplete: func() { events = append(events, "complete") },
	})
	assert.Equal(t, []string{"next", "complete"}, events)
}

func TestTeardownOrder(t *testing.T) {
	var order []int
	src := Create(func(s *Subscriber[int]) {
		s.OnTeardown(func() { order = append(order, 1) })
		s.OnTeardown(func() { order = append(order, 2) })
	})
	sub := src.Subscribe(Funcs[int]{})
	assert.False(t, sub.Closed())
	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.True(t, sub.Closed())
	assert.Equal(t, []int{2, 1}, order)
}

func TestMapFilterSkipTap(t *testing.T) {
	var tapped []int
	pipeline := Chain(Chain(Skip[int](1), Filter(func(v int) bool { return v%2 == 0 })), Map(func(v int) int { return v * 10 }))
	got, err := Collect(Tap(func(v int) { tapped = append(tapped, v) })(pipeline(Of(2, 3, 4, 5, 6))))
	require.NoError(t, err)
	assert.Equal(t, []int{40, 60}, got)
	assert.Equal(t, got, tapped)
}

func TestSkipNonPositive(t *testing.T) {
	got, err := Collect(Skip[int](-2)(Of(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestTakeStopsProducer(t *testing.T) {
	src, pulled := counting([]int{1, 2, 3, 4, 5})
	got, err := Collect(Take[int](2)(src))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 2, *pulled)

	got, err = Collect(Take[int](0)(Of(1)))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTryMapFailureIsTerminal(t *testing.T) {
	src, pulled := counting([]int{1, 2, 3, 4})
	op := TryMap(func(v int) (int, error) {
		if v == 2 {
			return 0, errBoom
		}
		return v, nil
	})

	var got []int
	err := ForEach(op(src), func(v int) error {
		got = append(got, v)
		return nil
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 2, *pulled)
}

func TestUpstreamErrorPassesThrough(t *testing.T) {
	src := Create(func(s *Subscriber[int]) {
		s.Next(1)
		s.Error(errBoom)
	})
	got, err := Collect(Map(func(v int) int { return v + 1 })(src))
	assert.Same(t, errBoom, err)
	assert.Equal(t, []int{2}, got)
}

func TestLiftRecoversPanic(t *testing.T) {
	op := Map(func(v int) int { return 10 / v })
	got, err := Collect(op(Of(5, 0, 2)))
	assert.ErrorIs(t, err, ErrOperatorPanic)
	assert.Equal(t, []int{2}, got)
}

func TestWindow(t *testing.T) {
	got, err := Collect(Window[int](3)(Of(1, 2, 3, 4, 5)))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}, got)

	got, err = Collect(Window[int](3)(Of(1, 2)))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Collect(Window[int](0)(Of(1)))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestWindowSlicesAreCopies(t *testing.T) {
	got, err := Collect(Window[int](2)(Of(1, 2, 3)))
	require.NoError(t, err)
	got[0][0] = 99
	assert.Equal(t, []int{2, 3}, got[1])
}

func TestZipTruncatesToSlowestBranch(t *testing.T) {
	src := Of(1, 2, 3, 4, 5)
	got, err := Collect(Zip2(Skip[int](2)(src), src))
	require.NoError(t, err)
	assert.Equal(t, []Pair[int, int]{{3, 1}, {4, 2}, {5, 3}}, got)
}

func TestZip3(t *testing.T) {
	got, err := Collect(Zip3(Of(1, 2, 3), Of("a", "b"), Of(true, false, true)))
	require.NoError(t, err)
	assert.Equal(t, []Triple[int, string, bool]{{1, "a", true}, {2, "b", false}}, got)
}

func TestZipError(t *testing.T) {
	got, err := Collect(Zip2(Of(1, 2), Throw[int](errBoom)))
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, got)
}

func TestShareRunsSourceOnce(t *testing.T) {
	src, pulled := counting([]int{1, 2, 3, 4})
	merged := Share(src, func(shared Stream[int]) Stream[Pair[int, int]] {
		return Zip2(Map(func(v int) int { return v * 2 })(shared), Skip[int](1)(shared))
	})

	got, err := Collect(merged)
	require.NoError(t, err)
	assert.Equal(t, []Pair[int, int]{{2, 2}, {4, 3}, {6, 4}}, got)
	assert.Equal(t, 4, *pulled)
}

func TestShareLockstep(t *testing.T) {
	var order []string
	merged := Share(Of(1, 2), func(shared Stream[int]) Stream[Pair[int, int]] {
		a := Tap(func(int) { order = append(order, "a") })(shared)
		b := Tap(func(int) { order = append(order, "b") })(shared)
		return Tap(func(Pair[int, int]) { order = append(order, "zip") })(Zip2(a, b))
	})
	_, err := Collect(merged)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "zip", "a", "b", "zip"}, order)
}

func TestUnsubscribeReleasesSharedBranches(t *testing.T) {
	feed := NewSubject[int]()
	released := 0
	tracked := Lift(func(down *Subscriber[int]) func(int) {
		down.OnTeardown(func() { released++ })
		return down.Next
	})

	composite := Share(feed.Stream(), func(shared Stream[int]) Stream[Pair[int, int]] {
		return Zip2(tracked(shared), tracked(shared))
	})

	var got []Pair[int, int]
	sub := composite.Subscribe(Funcs[Pair[int, int]]{OnNext: func(p Pair[int, int]) { got = append(got, p) }})
	feed.Next(7)
	assert.Equal(t, []Pair[int, int]{{7, 7}}, got)
	assert.Equal(t, 1, feed.Observers())

	sub.Unsubscribe()
	assert.Equal(t, 2, released)
	assert.Equal(t, 0, feed.Observers())

	feed.Next(8)
	assert.Len(t, got, 1)
}

func TestSubject(t *testing.T) {
	s := NewSubject[int]()
	assert.False(t, s.Closed())

	var a, b []int
	subA := s.Stream().Subscribe(Funcs[int]{OnNext: func(v int) { a = append(a, v) }})
	s.Stream().Subscribe(Funcs[int]{OnNext: func(v int) { b = append(b, v) }})

	s.Next(1)
	subA.Unsubscribe()
	s.Next(2)
	assert.Equal(t, []int{1}, a)
	assert.Equal(t, []int{1, 2}, b)

	s.Error(errBoom)
	assert.True(t, s.Closed())

	var late error
	s.Stream().Subscribe(Funcs[int]{OnError: func(err error) { late = err }})
	assert.ErrorIs(t, late, errBoom)
}

func TestFromIterator(t *testing.T) {
	i := 0
	next := func() (int, bool, error) {
		i++
		switch {
		case i <= 2:
			return i, true, nil
		case i == 3:
			return 0, false, errBoom
		}
		return 0, false, nil
	}
	got, err := Collect(FromIterator(next))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1, 2}, got)
}

func TestFromChannel(t *testing.T) {
	t.Run("completes when closed", func(t *testing.T) {
		ch := make(chan int, 3)
		ch <- 1
		ch <- 2
		close(ch)
		got, err := Collect(FromChannel(context.Background(), ch))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("fails when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Collect(FromChannel(ctx, make(chan int)))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestForEachStopsOnCallbackError(t *testing.T) {
	src, pulled := counting([]int{1, 2, 3})
	err := ForEach(src, func(v int) error {
		if v == 2 {
			return errBoom
		}
		return nil
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, *pulled)
}

func TestObserve(t *testing.T) {
	var events []string
	hooks := Funcs[int]{
		OnNext:     func(int) { events = append(events, "next") },
		OnError:    func(error) { events = append(events, "error") },
		OnComplete: func() { events = append(events, "complete") },
	}

	got, err := Collect(Observe(hooks)(Of(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, []string{"next", "next", "complete"}, events)

	events = nil
	_, err = Collect(Observe(hooks)(Throw[int](errBoom)))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"error"}, events)

	events = nil
	src, pulled := counting([]int{1, 2, 3})
	_, err = Collect(Take[int](1)(Observe(hooks)(src)))
	require.NoError(t, err)
	assert.Equal(t, []string{"next"}, events)
	assert.Equal(t, 1, *pulled)
}

func TestMerge(t *testing.T) {
	got, err := Collect(Merge(Of(1, 2), Of(3)))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = Collect(Merge[int]())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Collect(Merge(Of(1), Throw[int](errBoom)))
	assert.ErrorIs(t, err, errBoom)
}

func TestMergeSharedBranchesInterleave(t *testing.T) {
	merged := Share(Of(1, 2, 3), func(shared Stream[int]) Stream[int] {
		return Merge(
			Map(func(v int) int { return v * 10 })(shared),
			Map(func(v int) int { return v * 100 })(shared),
		)
	})
	got, err := Collect(merged)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 100, 20, 200, 30, 300}, got)
}
