package internal

import "fmt"

// Effect is an eagerly subscribed consumer that runs a side-effecting
// callback whenever any of its sources change. Unlike a Derived it
// never caches a value; it only ever reacts.
type Effect struct {
	consumerNode

	callback func()

	// queueNext threads this effect into rt.batchedEffect, the LIFO
	// pending-effect queue. nil when not queued.
	queueNext *Effect

	// disposed is set by Dispose; a disposed effect's body never runs.
	disposed bool
}

// NewEffect creates and immediately runs an effect. It returns the
// effect together with any error from that first run; calling the
// effect's Dispose method unsubscribes it from everything it reads and
// it will never run again.
func NewEffect(callback func()) (*Effect, error) {
	e := &Effect{callback: callback}
	err := runEffect(e)
	return e, err
}

func (e *Effect) consNode() *consumerNode { return &e.consumerNode }

func (e *Effect) wantsSubscription() bool { return true }

// notify enqueues the effect to run on the next drain, unless it is
// already queued for this wave.
func (e *Effect) notify() {
	if e.flags.has(flagNotified) {
		return
	}
	e.flags.set(flagNotified)

	e.queueNext = rt.batchedEffect
	rt.batchedEffect = e
}

// Dispose unsubscribes the effect from every source it currently
// reads and marks it disposed. It will not run again, not even if it
// was already queued for the current drain.
func (e *Effect) Dispose() {
	e.disposed = true
	disposeConsumer(e)
}

// executeBody runs one pass of the effect: install it as the active
// evaluator, prepare its sources list for re-tracking, run the user
// callback (capturing any panic as an error), then reconcile the
// sources list to whatever was actually read this time.
func (e *Effect) executeBody() error {
	if e.disposed {
		return nil
	}
	if e.flags.has(flagRunning) {
		return ErrCycleDetected
	}
	e.flags.set(flagRunning)
	defer e.flags.clear(flagRunning)

	prevEval := enterEval(e)
	prepareSources(e)

	err := runCallback(e.callback)

	cleanupSources(e)
	exitEval(prevEval)

	return err
}

func runCallback(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("reactor: effect callback panicked: %v", r)
			}
		}
	}()
	fn()
	return nil
}

func disposeConsumer(c consumer) {
	node := c.consNode()
	for e := node.sourcesHead; e != nil; {
		next := e.nextSource
		unsubscribeEdge(e)
		e.prevSource = nil
		e.nextSource = nil
		e = next
	}
	node.sourcesHead = nil
	node.sourcesTail = nil
}
