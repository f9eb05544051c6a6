package internal

// This file implements the evaluation-context prepare/cleanup
// discipline that lets a derived or effect keep edge identity across
// re-evaluations instead of tearing down and rebuilding its whole
// sources list every time.

// prepareSources resets every edge already in c's sources list to
// "not yet used this evaluation" and redirects each source's
// activeEdge slot to point at that edge, saving whatever the slot
// previously held into the edge's rollback field. Tracked reads during
// the upcoming formula run consult source.activeEdge to tell a known
// dependency from a brand new one.
func prepareSources(c consumer) {
	node := c.consNode()
	for e := node.sourcesHead; e != nil; e = e.nextSource {
		e.used = false

		sourceNode := e.source.obsNode()
		e.rollback = sourceNode.activeEdge
		sourceNode.activeEdge = e
	}
}

// cleanupSources walks the (possibly mixed, reverse-order) sources
// list built during the evaluation and produces a new forward-ordered
// list containing only the edges marked used, in first-read-first
// order: walking from the old tail (the first dependency ever read)
// towards the old head (the most recently read one) and appending each
// kept edge as it's visited yields exactly that order. Unused edges
// are unsubscribed and dropped. Every edge, kept
// or dropped, has its source's activeEdge slot restored from rollback,
// so a nested evaluation that borrowed the slot hands it back cleanly.
func cleanupSources(c consumer) {
	node := c.consNode()

	var newHead, newTail *edge
	for e := node.sourcesTail; e != nil; {
		prev := e.prevSource

		sourceNode := e.source.obsNode()

		if e.used {
			e.prevSource = newTail
			e.nextSource = nil
			if newTail != nil {
				newTail.nextSource = e
			} else {
				newHead = e
			}
			newTail = e
		} else {
			unsubscribeEdge(e)
			e.prevSource = nil
			e.nextSource = nil
		}

		sourceNode.activeEdge = e.rollback
		e.rollback = nil

		e = prev
	}

	node.sourcesHead = newHead
	node.sourcesTail = newTail
}

// resolveEdge implements the three cases of a tracked read during an
// evaluation: a brand new dependency, a known one not yet used this
// pass, or one already used (repeated reads are free).
func resolveEdge(target consumer, source observable) *edge {
	sourceNode := source.obsNode()
	targetNode := target.consNode()

	if existing := sourceNode.activeEdge; existing != nil && existing.target == target {
		if existing.used {
			return existing
		}

		existing.used = true
		reorderToHead(existing, targetNode)
		return existing
	}

	e := &edge{source: source, target: target, used: true}
	pushSourceHead(e, targetNode)

	e.rollback = sourceNode.activeEdge
	sourceNode.activeEdge = e

	if target.wantsSubscription() {
		subscribeEdge(e)
	}

	return e
}

// trackRead is called by a source or derived's Read method. If there
// is an active evaluator it establishes/refreshes the dependency edge
// before returning the peeked value: whenever an evaluation is in
// progress, reading any node installs or refreshes exactly one edge
// from it into the current evaluator.
func trackRead(source observable) (any, error) {
	target := rt.evalContext
	if target == nil {
		return source.peek()
	}

	e := resolveEdge(target, source)
	value, err := source.peek()
	e.version = source.observableVersion()
	return value, err
}
