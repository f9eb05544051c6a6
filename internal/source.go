package internal

// Source is a writable value cell: a local version counter plus the
// head of the edges that depend on it.
type Source struct {
	observableNode

	value   any
	version uint64
}

// NewSource creates a source holding initial.
func NewSource(initial any) *Source {
	return &Source{value: initial}
}

func (s *Source) obsNode() *observableNode { return &s.observableNode }

func (s *Source) observableVersion() uint64 { return s.version }

func (s *Source) peek() (any, error) {
	return s.value, nil
}

// Read returns the current value, tracking a dependency edge if
// called inside an active evaluation.
func (s *Source) Read() any {
	v, _ := trackRead(s)
	return v
}

// Peek returns the value without edge tracking.
func (s *Source) Peek() any {
	v, _ := s.peek()
	return v
}

// Write stores a new value. A no-op if v is identical (by the engine's
// reference/bitwise identity rule) to the current value. Otherwise the
// version counters advance and dependents are notified inside an
// implicit batch, so any effects they enqueue run after Write returns
// (or are deferred to the enclosing explicit batch, if any).
func (s *Source) Write(v any) error {
	if isEqual(s.value, v) {
		return nil
	}

	s.value = v
	s.version++
	rt.globalVersion++

	return runBatch(func() {
		notifyDependents(s)
	})
}

func notifyDependents(s observable) {
	node := s.obsNode()
	for e := node.dependentsHead; e != nil; e = e.nextDependent {
		e.target.notify()
	}
}

func isEqual(a, b any) bool {
	return a == b
}
