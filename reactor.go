// Package reactor is a small dependency-graph runtime: writable
// sources, derived values recomputed lazily from them, and effects
// that react eagerly to either.
package reactor

import "github.com/go-reactor/reactor/internal"

// ErrCycleDetected is the error panicked when a derived reads itself,
// directly or transitively, during its own evaluation, or when a batch
// drain loops past its iteration bound (as an effect that keeps
// re-triggering itself does).
var ErrCycleDetected = internal.ErrCycleDetected

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Source is a writable value cell. Reading one inside a Derived or
// Effect's formula establishes a dependency edge.
type Source[T comparable] struct {
	source *internal.Source
}

// NewSource creates a source holding initial.
func NewSource[T comparable](initial T) *Source[T] {
	return &Source[T]{
		source: internal.NewSource(initial),
	}
}

// Read returns the current value, tracking the dependency if called
// within a reactive context.
func (s *Source[T]) Read() T {
	return as[T](s.source.Read())
}

// Peek returns the current value without tracking a dependency, even
// when called within a reactive context.
func (s *Source[T]) Peek() T {
	return as[T](s.source.Peek())
}

// Write stores a new value, notifying dependents if it differs from
// the value currently held. A write made outside any enclosing Batch
// still runs its notification fan-out inside an implicit one-shot
// batch, so any effects it triggers have finished by the time Write
// returns.
func (s *Source[T]) Write(v T) {
	if err := s.source.Write(v); err != nil {
		panic(err)
	}
}

// Derived is a read-only value recomputed from a formula over other
// sources and derived values. Recomputation is lazy: the formula does
// not run again until something actually reads a stale derived.
type Derived[T any] struct {
	derived *internal.Derived
}

// NewDerived creates a derived computed by formula. The formula does
// not run until the derived is first read or peeked.
func NewDerived[T any](formula func() T) *Derived[T] {
	return &Derived[T]{
		derived: internal.NewDerived(func() any {
			return formula()
		}),
	}
}

// Read returns the up-to-date value, tracking the dependency if called
// within a reactive context. Panics with the formula's captured error,
// or with ErrCycleDetected, if either occurred.
func (d *Derived[T]) Read() T {
	v, err := d.derived.Read()
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// Peek returns the up-to-date value without tracking a dependency. It
// still recomputes a stale derived; only the tracking is skipped.
func (d *Derived[T]) Peek() T {
	v, err := d.derived.Peek()
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// Disposer stops an effect from running again.
type Disposer func()

// NewEffect creates and immediately runs an effect, re-running it
// whenever any source or derived it reads changes. The returned
// Disposer unsubscribes it from everything it currently reads.
func NewEffect(fn func()) Disposer {
	e, err := internal.NewEffect(fn)
	if err != nil {
		panic(err)
	}
	return e.Dispose
}

// Batch coalesces every write made inside fn into a single
// notification wave: effects that would otherwise run once per write
// run once after fn returns instead. Batches nest; only the outermost
// one drains.
func Batch(fn func()) {
	if err := internal.Batch(fn); err != nil {
		panic(err)
	}
}

// BatchValue is Batch for a function that produces a result.
func BatchValue[T any](fn func() T) T {
	var result T
	Batch(func() {
		result = fn()
	})
	return result
}

// Readable is anything Subscribe can watch: a Source or a Derived.
type Readable[T any] interface {
	Read() T
}

// Subscribe installs an effect that runs fn with the current value of
// r, immediately and again every time r changes. It is sugar over
// NewEffect for the common case of reacting to a single value; the
// returned Disposer stops it.
func Subscribe[T any](r Readable[T], fn func(T)) Disposer {
	return NewEffect(func() {
		fn(r.Read())
	})
}
