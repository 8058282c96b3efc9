package stream

// Subject is a hot stream: values pushed with Next reach every subscriber
// attached at that moment. It backs multicast branches and live feeds.
type Subject[T any] struct {
	observers []*Subscriber[T]
	attached  bool
	stopped   bool
	err       error
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Stream returns a stream that attaches to the subject. Subscribing after the
// subject stopped replays only the terminal notification.
func (s *Subject[T]) Stream() Stream[T] {
	return Create(func(sub *Subscriber[T]) {
		if s.stopped {
			if s.err != nil {
				sub.Error(s.err)
			} else {
				sub.Complete()
			}
			return
		}
		s.observers = append(s.observers, sub)
		s.attached = true
		sub.OnTeardown(func() { s.remove(sub) })
	})
}

func (s *Subject[T]) Next(v T) {
	if s.stopped {
		return
	}
	for _, o := range s.snapshot() {
		o.Next(v)
	}
}

func (s *Subject[T]) Error(err error) {
	if s.stopped {
		return
	}
	s.stopped = true
	s.err = err
	observers := s.observers
	s.observers = nil
	for _, o := range observers {
		o.Error(err)
	}
}

func (s *Subject[T]) Complete() {
	if s.stopped {
		return
	}
	s.stopped = true
	observers := s.observers
	s.observers = nil
	for _, o := range observers {
		o.Complete()
	}
}

// Closed reports whether the subject stopped or every subscriber that ever
// attached has detached. An upstream feeding the subject stops once it is true.
func (s *Subject[T]) Closed() bool {
	return s.stopped || (s.attached && len(s.observers) == 0)
}

// Observers is the number of attached subscribers.
func (s *Subject[T]) Observers() int {
	return len(s.observers)
}

func (s *Subject[T]) snapshot() []*Subscriber[T] {
	out := make([]*Subscriber[T], len(s.observers))
	copy(out, s.observers)
	return out
}

func (s *Subject[T]) remove(sub *Subscriber[T]) {
	for i, o := range s.observers {
		if o == sub {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Multicast shares one run of a source among any number of branches. Branches
// are attached with Stream and the source starts only on Connect, so every
// branch observes the same elements in the same order.
type Multicast[T any] struct {
	src     Stream[T]
	subject *Subject[T]
	conn    Subscription
}

// Publish wraps src for multicasting.
func Publish[T any](src Stream[T]) *Multicast[T] {
	return &Multicast[T]{src: src, subject: NewSubject[T]()}
}

// Stream returns a new branch of the shared source.
func (m *Multicast[T]) Stream() Stream[T] {
	return m.subject.Stream()
}

// Connect subscribes the shared source once. Later calls return the same
// subscription.
func (m *Multicast[T]) Connect() Subscription {
	if m.conn == nil {
		m.conn = m.src.Subscribe(m.subject)
	}
	return m.conn
}

// Share runs selector against a multicast view of src so that every branch the
// selector derives reuses a single upstream run. The source is connected after
// the selector's result is subscribed; all of it is torn down together.
func Share[T, R any](src Stream[T], selector func(shared Stream[T]) Stream[R]) Stream[R] {
	return Create(func(down *Subscriber[R]) {
		m := Publish(src)
		out := selector(m.Stream()).Subscribe(down)
		down.OnTeardown(out.Unsubscribe)
		if down.Closed() {
			return
		}
		conn := m.Connect()
		down.OnTeardown(conn.Unsubscribe)
	})
}
