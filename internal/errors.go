package internal

import "errors"

// ErrCycleDetected is raised when a derived reads itself (directly or
// transitively) during its own recomputation, when an effect's body is
// entered again while it is still running, or when the batch drain
// loop iterates past maxBatchIterations (which is how an effect that
// keeps re-notifying itself is caught).
var ErrCycleDetected = errors.New("reactor: cycle detected")

// ErrReadonlyWrite is raised when code attempts to write a derived
// node's value.
var ErrReadonlyWrite = errors.New("reactor: derived values are readonly")
