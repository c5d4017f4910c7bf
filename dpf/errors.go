package dpf

import "errors"

// Sentinel errors identifying the error-kind taxonomy of the DPF core.
// Call sites wrap these with fmt.Errorf("...: %w", Err...) for context;
// callers check kind with errors.Is.
var (
	// ErrConfiguration reports inconsistent construction parameters: an
	// out-of-range domain width, a missing or non-positive-width output
	// type, a beta count or wildcard string that does not match the Spec,
	// unsorted endpoints/sequence, a non-Bit output passed to prefix parity,
	// or duplicate special points and mismatched share vectors in multidpf.
	ErrConfiguration = errors.New("dpf: configuration error")

	// ErrNotReady reports an evaluator invoked against a key with an
	// outstanding wildcard on the requested output. An outstanding input
	// (alpha) wildcard is not checked by the evaluators.
	ErrNotReady = errors.New("dpf: not ready (unassigned wildcard)")

	// ErrProtocolState reports an illegal wildcard-completion state
	// transition: a second completion attempt, or a message received out of
	// order. The affected slot is permanently poisoned.
	ErrProtocolState = errors.New("dpf: protocol state error")

	// ErrKeyMismatch reports that two parties' common-part hashes differ.
	ErrKeyMismatch = errors.New("dpf: key mismatch")

	// ErrIO reports a short read or write against the wire I/O helpers.
	ErrIO = errors.New("dpf: i/o error")
)
