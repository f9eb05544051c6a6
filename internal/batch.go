package internal

// This file implements batch nesting and the effect drain loop.
// Writes and effect executions both go through runBatch so that a
// write made from inside an already-running effect enqueues rather
// than firing inline.

// Batch runs fn, then, once every nested Batch/runBatch call has
// unwound back to depth zero, drains whatever effects got enqueued
// along the way. The first error any drained effect produced is
// returned; later effects in the same drain still run.
func Batch(fn func()) error {
	return runBatch(fn)
}

func runBatch(fn func()) error {
	rt.batchDepth++
	fn()
	rt.batchDepth--

	if rt.batchDepth == 0 && !rt.draining {
		return drainEffects()
	}
	return nil
}

// drainEffects repeatedly takes the pending-effect queue and runs it
// until no more effects are enqueued. Each full pass counts as one
// batchIteration; exceeding maxBatchIterations means some effect keeps
// re-enqueueing itself (directly or transitively) and the drain gives
// up rather than spin forever.
func drainEffects() error {
	rt.draining = true
	defer func() { rt.draining = false }()

	var firstErr error

	for rt.batchedEffect != nil {
		pending := rt.batchedEffect
		rt.batchedEffect = nil

		rt.batchIteration++
		if rt.batchIteration > maxBatchIterations {
			rt.batchIteration = 0
			return ErrCycleDetected
		}

		for e := pending; e != nil; {
			next := e.queueNext
			e.queueNext = nil
			e.flags.clear(flagNotified)

			if err := runEffect(e); err != nil && firstErr == nil {
				firstErr = err
			}

			e = next
		}
	}

	rt.batchIteration = 0
	return firstErr
}

// runEffect wraps one effect execution in its own batch nesting level,
// so that writes the effect body makes are batched like any other
// write. Because rt.draining is already true whenever this is called
// from drainEffects, the nested runBatch never recurses into
// drainEffects itself; any writes the callback makes simply enqueue
// more effects onto rt.batchedEffect for the enclosing drain loop to
// pick up on its next pass.
func runEffect(e *Effect) error {
	var bodyErr error
	batchErr := runBatch(func() {
		bodyErr = e.executeBody()
	})

	if bodyErr != nil {
		return bodyErr
	}
	return batchErr
}
