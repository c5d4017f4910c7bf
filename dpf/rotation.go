package dpf

// RotationIterable presents a full/interval result slice logically rotated
// by an input wildcard's completed offset: once alpha has been completed
// online, the underlying buffer is still indexed by the physical
// (pre-offset) tree position, but callers should see it in the logical
// order that matches the domain they queried.
type RotationIterable struct {
	values []Value
	offset uint64
}

// NewRotationIterable wraps values (as produced by EvalFull/EvalInterval
// over the physical domain) to be read back shifted by offset modulo
// len(values).
func NewRotationIterable(values []Value, offset uint64) *RotationIterable {
	return &RotationIterable{values: values, offset: offset}
}

// Len returns the number of elements.
func (r *RotationIterable) Len() int { return len(r.values) }

// At returns the logical element at position j: values[(j-offset) mod n].
// The underlying buffer is indexed by the post-offset (physical) position
// applyOffset maps a logical input to, so reading it back at logical
// position j means looking up applyOffset(j) = (j-offset) mod n.
func (r *RotationIterable) At(j uint64) Value {
	n := uint64(len(r.values))
	idx := ((j % n) + n - (r.offset % n)) % n
	return r.values[idx]
}

// Slice materializes the full logical order as a plain slice.
func (r *RotationIterable) Slice() []Value {
	out := make([]Value, len(r.values))
	for j := range out {
		out[j] = r.At(uint64(j))
	}
	return out
}
