package internal

// observable is a node that can be read and that keeps a list of
// edges subscribed to it (its dependents). Source and Derived both
// implement it.
type observable interface {
	// peek returns the node's current value without establishing a
	// dependency edge. Used both by external Peek() calls and
	// internally during the source-version short-circuit scan.
	peek() (any, error)

	// observableVersion returns the node's own version counter.
	observableVersion() uint64

	obsNode() *observableNode
}

// consumer is a node that reads observables and reacts to their
// changes. Derived and Effect both implement it.
type consumer interface {
	// notify marks the node stale (or enqueues it, for an effect) in
	// response to an upstream change. Never computes anything itself.
	notify()

	consNode() *consumerNode

	// wantsSubscription reports whether newly discovered edges from
	// this consumer should be subscribed (linked into the source's
	// dependents list) immediately. Effects always want this; a
	// derived only once it has its own downstream subscriber
	// (flagShouldSubscribe).
	wantsSubscription() bool
}

// observableNode is the half of a node's bookkeeping visible to its
// dependents: the head/tail of the edges subscribed to it, and the
// slot used during re-tracking to remember "the edge the currently
// active evaluator has to me" (spec's source._node).
type observableNode struct {
	dependentsHead *edge
	dependentsTail *edge

	// activeEdge holds the edge, if any, that the node currently
	// installed for whichever consumer is being (re-)evaluated. It is
	// redirected on entry to prepareSources and restored from
	// edge.rollback on cleanupSources, forming a LIFO stack across
	// nested evaluations without needing an explicit stack structure.
	activeEdge *edge
}

// consumerNode is the half of a node's bookkeeping covering what it
// depends on: the head/tail of its sources list (most-recently-
// observed-first during evaluation, first-read-first once settled)
// and its flag bits.
type consumerNode struct {
	sourcesHead *edge
	sourcesTail *edge

	flags nodeFlags
}

// edge is the one mutable record connecting a single (source,
// dependent) pair. It is linked into exactly one of the source's
// dependents list and exactly one of the target's sources list, or
// into neither when freshly allocated or freshly detached.
type edge struct {
	source observable
	target consumer

	// version is the source's version at the moment target last
	// observed it. Never exceeds source.observableVersion().
	version uint64

	// used is a scratch flag set during re-tracking to distinguish
	// edges reused this evaluation from ones that should be dropped.
	used bool

	// sibling links threading the target's sources list.
	prevSource *edge
	nextSource *edge

	// sibling links threading the source's dependents list.
	prevDependent *edge
	nextDependent *edge

	// rollback saves whatever previously occupied source.activeEdge,
	// so cleanupSources can restore it when evaluations nest.
	rollback *edge
}

// subscribeEdge links e into the head of its source's dependents
// list. This is the only way an edge becomes "subscribed" (invariant
// (iii)): its target will now be notified when the source changes.
// If this is the source's first subscribed dependent and the source
// is itself a Derived, that derived's own lazy-upward-subscription
// bookkeeping fires (see derived.go).
func subscribeEdge(e *edge) {
	sourceNode := e.source.obsNode()

	e.prevDependent = nil
	e.nextDependent = sourceNode.dependentsHead
	if sourceNode.dependentsHead != nil {
		sourceNode.dependentsHead.prevDependent = e
	} else {
		sourceNode.dependentsTail = e
	}
	sourceNode.dependentsHead = e

	if d, ok := e.source.(*Derived); ok {
		d.onGainedDependent()
	}
}

// unsubscribeEdge splices e out of its source's dependents list. A
// no-op if e is not currently linked into one. If the source is a
// Derived and this was its last subscribed dependent, that derived's
// lazy-upward-subscription bookkeeping fires (see derived.go).
func unsubscribeEdge(e *edge) {
	sourceNode := e.source.obsNode()

	if e.prevDependent == nil && e.nextDependent == nil && sourceNode.dependentsHead != e {
		return // not linked
	}

	if e.prevDependent != nil {
		e.prevDependent.nextDependent = e.nextDependent
	} else {
		sourceNode.dependentsHead = e.nextDependent
	}

	if e.nextDependent != nil {
		e.nextDependent.prevDependent = e.prevDependent
	} else {
		sourceNode.dependentsTail = e.prevDependent
	}

	e.prevDependent = nil
	e.nextDependent = nil

	if d, ok := e.source.(*Derived); ok {
		d.onLostDependent()
	}
}

// reorderToHead moves an already-linked edge to the head of the
// target's sources list in O(1), preserving the most-recently-used-
// first ordering required during an in-progress evaluation.
func reorderToHead(e *edge, target *consumerNode) {
	if target.sourcesHead == e {
		return
	}

	// splice out
	if e.prevSource != nil {
		e.prevSource.nextSource = e.nextSource
	}
	if e.nextSource != nil {
		e.nextSource.prevSource = e.prevSource
	} else {
		target.sourcesTail = e.prevSource
	}

	// splice in at head
	e.prevSource = nil
	e.nextSource = target.sourcesHead
	if target.sourcesHead != nil {
		target.sourcesHead.prevSource = e
	} else {
		target.sourcesTail = e
	}
	target.sourcesHead = e
}

// pushSourceHead links a freshly allocated edge into the head of the
// target's sources list.
func pushSourceHead(e *edge, target *consumerNode) {
	e.prevSource = nil
	e.nextSource = target.sourcesHead
	if target.sourcesHead != nil {
		target.sourcesHead.prevSource = e
	} else {
		target.sourcesTail = e
	}
	target.sourcesHead = e
}
