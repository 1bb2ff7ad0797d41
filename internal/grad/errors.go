package grad

import "errors"

// Sentinel errors returned by Generate. All of them are fatal for the
// pass: the graph must be discarded once any of them is returned.
var (
	// ErrNoRule means a node kind with no differentiation rule appeared
	// in the forward graph. The rule table is expected to be exhaustive
	// over every kind legal in a trainable graph, so this is an internal
	// error, not a user-input error.
	ErrNoRule = errors.New("no differentiation rule for node kind")

	// ErrMissingGradient means a gradient lookup found no entry. This
	// signals a dependency-order violation or a forward graph that is
	// disconnected from its declared outputs.
	ErrMissingGradient = errors.New("no gradient registered for value")

	// ErrShapeMismatch means a structural rule (reshape, transpose,
	// slice, concat) found geometry that violates its invariants.
	ErrShapeMismatch = errors.New("gradient shape mismatch")
)
